package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/proc"
)

// Collector snapshots the running processes through gopsutil.
type Collector struct {
	logger *slog.Logger
	list   func(ctx context.Context) ([]proc.Handle, error)
}

func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{
		logger: logger.With("component", "collector"),
		list:   listProcesses,
	}
}

func listProcesses(ctx context.Context) ([]proc.Handle, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	handles := make([]proc.Handle, len(procs))
	for i, p := range procs {
		handles[i] = proc.Wrap(p)
	}
	return handles, nil
}

func (c *Collector) Snapshot(ctx context.Context) (model.Snapshot, error) {
	handles, err := c.list(ctx)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("list processes: %w", err)
	}

	records := make([]model.ProcessRecord, 0, len(handles))
	skipped := 0
	for _, h := range handles {
		if err := ctx.Err(); err != nil {
			return model.Snapshot{}, err
		}
		rec, err := proc.ReadRecord(ctx, h)
		if err != nil {
			if proc.IsExpected(err) {
				skipped++
				c.logger.Debug("skip process", "pid", h.PID(), "err", err)
				continue
			}
			return model.Snapshot{}, err
		}
		records = append(records, rec)
	}

	c.logger.Debug("snapshot", "records", len(records), "skipped", skipped)
	return model.Snapshot{
		Records:    records,
		CapturedAt: time.Now(),
		Source:     "gopsutil",
	}, nil
}

func (c *Collector) Host(ctx context.Context) (HostStats, error) {
	var hs HostStats

	if avg, err := load.AvgWithContext(ctx); err == nil {
		hs.Load1, hs.Load5, hs.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		hs.UptimeSeconds = float64(up)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return hs, fmt.Errorf("virtual memory: %w", err)
	}
	hs.MemTotalBytes = vm.Total
	return hs, nil
}
