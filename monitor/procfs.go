package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/proc"
)

// ProcFS snapshots processes by reading procfs directly, without gopsutil.
type ProcFS struct {
	Root     string
	HZ       int
	PageSize int

	logger *slog.Logger
}

func NewProcFS(root string, logger *slog.Logger) *ProcFS {
	if root == "" {
		root = proc.DefaultRoot
	}
	return &ProcFS{
		Root:     root,
		HZ:       proc.DetectHZ(),
		PageSize: os.Getpagesize(),
		logger:   logger.With("component", "procfs"),
	}
}

func (p *ProcFS) Snapshot(ctx context.Context) (model.Snapshot, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read %s: %w", p.Root, err)
	}

	hz := float64(p.HZ)
	if hz <= 0 {
		hz = 100
	}

	records := make([]model.ProcessRecord, 0, len(entries))
	skipped := 0
	for _, ent := range entries {
		if !proc.IsNumeric(ent.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return model.Snapshot{}, err
		}
		pid, err := strconv.Atoi(ent.Name())
		if err != nil {
			continue
		}

		st, err := proc.ReadStat(p.Root, pid)
		if err != nil {
			if proc.IsExpected(err) {
				skipped++
				p.logger.Debug("skip process", "pid", pid, "err", err)
				continue
			}
			return model.Snapshot{}, err
		}

		rec := model.ProcessRecord{
			PID:        int32(pid),
			Name:       st.Comm,
			UserTime:   float64(st.UTime) / hz,
			SystemTime: float64(st.STime) / hz,
			Priority:   st.Nice,
		}
		if st.RSSPages > 0 {
			rec.MemoryBytes = uint64(st.RSSPages) * uint64(p.PageSize)
		}

		io, err := proc.ReadIO(p.Root, pid)
		switch {
		case err == nil:
			rec.ReadBytes = io.ReadBytes
			rec.WriteBytes = io.WriteBytes
		case proc.IsExpected(err):
		default:
			return model.Snapshot{}, err
		}

		records = append(records, rec)
	}

	p.logger.Debug("snapshot", "records", len(records), "skipped", skipped)
	return model.Snapshot{
		Records:    records,
		CapturedAt: time.Now(),
		Source:     "procfs",
	}, nil
}

func (p *ProcFS) Host(ctx context.Context) (HostStats, error) {
	var hs HostStats
	hs.Load1, hs.Load5, hs.Load15 = proc.ReadLoadavg(p.Root)
	hs.UptimeSeconds = proc.ReadUptime(p.Root)
	hs.MemTotalBytes = uint64(proc.ReadMemTotalKB(p.Root)) * 1024
	return hs, nil
}
