package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/C0okiegranny221/OSPROJECT/config"
	"github.com/C0okiegranny221/OSPROJECT/logging"
	"github.com/C0okiegranny221/OSPROJECT/model"
)

// Provider captures a fresh snapshot of process records.
//
// Implementations skip processes that exit or deny access while being
// read and keep the enumeration order. Any other failure is returned.
type Provider interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// Seeder is implemented by providers whose output depends on a seed.
type Seeder interface {
	Seed(seed int64)
}

// HostStats summarises the machine a snapshot was taken on.
type HostStats struct {
	Load1, Load5, Load15 float64
	UptimeSeconds        float64
	MemTotalBytes        uint64
}

// HostReporter is implemented by providers backed by a real machine.
type HostReporter interface {
	Host(ctx context.Context) (HostStats, error)
}

// FromConfig builds the provider named by cfg.Provider.
func FromConfig(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	switch cfg.Provider {
	case config.ProviderGopsutil, "":
		return NewCollector(logger), nil
	case config.ProviderProcFS:
		return NewProcFS(cfg.ProcfsRoot, logger), nil
	case config.ProviderSynthetic:
		return NewSynthetic(cfg.SyntheticCount, 1), nil
	case config.ProviderReplay:
		return NewReplay(cfg.ReplayPath, logger), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}
