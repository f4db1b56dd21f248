package monitor

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/C0okiegranny221/OSPROJECT/model"
)

// Synthetic generates plausible process records from a seeded PRNG, so
// episodes can be reproduced without touching the host.
type Synthetic struct {
	Count int

	rng *rand.Rand
}

func NewSynthetic(count int, seed int64) *Synthetic {
	s := &Synthetic{Count: count}
	s.Seed(seed)
	return s
}

// Seed restarts the generator; the next snapshot is a function of seed only.
func (s *Synthetic) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Synthetic) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	records := make([]model.ProcessRecord, s.Count)
	for i := range records {
		records[i] = model.ProcessRecord{
			PID:         int32(1000 + i),
			Name:        fmt.Sprintf("synthetic-%d", i),
			UserTime:    round2(s.rng.ExpFloat64() * 10),
			SystemTime:  round2(s.rng.ExpFloat64() * 3),
			Priority:    int64(s.rng.Intn(40) - 20),
			MemoryBytes: uint64(4096 + s.rng.Int63n(512<<20)),
			ReadBytes:   uint64(s.rng.Int63n(64 << 20)),
			WriteBytes:  uint64(s.rng.Int63n(16 << 20)),
		}
	}

	return model.Snapshot{
		Records:    records,
		CapturedAt: time.Now(),
		Source:     "synthetic",
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
