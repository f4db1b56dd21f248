package monitor

import (
	"context"
	"time"

	"github.com/C0okiegranny221/OSPROJECT/model"
)

// Static hands out the same records on every call.
type Static struct {
	Records []model.ProcessRecord
	Source  string
}

func NewStatic(records ...model.ProcessRecord) *Static {
	return &Static{Records: records, Source: "static"}
}

func (s *Static) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}
	snap := model.Snapshot{
		Records:    s.Records,
		CapturedAt: time.Now(),
		Source:     s.Source,
	}
	return snap.Clone(), nil
}
