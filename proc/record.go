package proc

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/C0okiegranny221/OSPROJECT/model"
)

// Handle is the part of *process.Process the record reader needs.
type Handle interface {
	PID() int32
	NameWithContext(ctx context.Context) (string, error)
	TimesWithContext(ctx context.Context) (*cpu.TimesStat, error)
	NiceWithContext(ctx context.Context) (int32, error)
	MemoryInfoWithContext(ctx context.Context) (*process.MemoryInfoStat, error)
	IOCountersWithContext(ctx context.Context) (*process.IOCountersStat, error)
}

type psHandle struct {
	*process.Process
}

func (h psHandle) PID() int32 { return h.Pid }

// Wrap adapts a gopsutil process to Handle.
func Wrap(p *process.Process) Handle {
	return psHandle{p}
}

// ReadRecord reads one process. CPU times, niceness and memory are required
// and any error reading them is returned as is, so callers can tell an
// exited or forbidden process (IsExpected) from a real failure. I/O counters
// are optional: when they cannot be read the counters stay zero.
func ReadRecord(ctx context.Context, h Handle) (model.ProcessRecord, error) {
	rec := model.ProcessRecord{PID: h.PID()}

	times, err := h.TimesWithContext(ctx)
	if err != nil {
		return rec, fmt.Errorf("pid %d cpu times: %w", rec.PID, err)
	}
	if times == nil {
		return rec, fmt.Errorf("pid %d cpu times: %w", rec.PID, ErrIncomplete)
	}

	nice, err := h.NiceWithContext(ctx)
	if err != nil {
		return rec, fmt.Errorf("pid %d nice: %w", rec.PID, err)
	}

	mem, err := h.MemoryInfoWithContext(ctx)
	if err != nil {
		return rec, fmt.Errorf("pid %d memory: %w", rec.PID, err)
	}
	if mem == nil {
		return rec, fmt.Errorf("pid %d memory: %w", rec.PID, ErrIncomplete)
	}

	rec.UserTime = times.User
	rec.SystemTime = times.System
	rec.Priority = int64(nice)
	rec.MemoryBytes = mem.RSS

	if name, err := h.NameWithContext(ctx); err == nil {
		rec.Name = name
	}

	ioc, err := h.IOCountersWithContext(ctx)
	switch {
	case err == nil && ioc != nil:
		rec.ReadBytes = ioc.ReadBytes
		rec.WriteBytes = ioc.WriteBytes
	case err == nil, IsExpected(err), isUnsupported(err):
	default:
		return rec, fmt.Errorf("pid %d io counters: %w", rec.PID, err)
	}

	return rec, nil
}
