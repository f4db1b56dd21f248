package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/C0okiegranny221/OSPROJECT/alert"
	"github.com/C0okiegranny221/OSPROJECT/config"
	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/logging"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
	"github.com/C0okiegranny221/OSPROJECT/policy"
	"github.com/C0okiegranny221/OSPROJECT/rollout"
)

const alertCooldown = 60 * time.Second

// Notifier delivers an alert message to a webhook.
type Notifier func(ctx context.Context, webhookURL, msg string) error

// Daemon plays one episode per tick against a fresh snapshot and raises an
// alert when the episode cost crosses the configured threshold.
type Daemon struct {
	mu       sync.Mutex
	cfg      *config.Config
	provider monitor.Provider
	policy   policy.Policy

	cfgPath   string
	store     rollout.Store
	logger    *slog.Logger
	notify    Notifier
	now       func() time.Time
	lastAlert time.Time
	seed      int64
}

// New builds a daemon from cfg. cfgPath is watched for changes by Run; it
// may be empty to disable reloading. store may be nil.
func New(cfg *config.Config, cfgPath string, store rollout.Store, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	d := &Daemon{
		cfgPath: cfgPath,
		store:   store,
		logger:  logger.With("component", "daemon"),
		notify:  alert.SendDiscord,
		now:     time.Now,
		seed:    time.Now().UnixNano(),
	}
	if err := d.apply(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Daemon) apply(cfg *config.Config) error {
	provider, err := monitor.FromConfig(cfg, d.logger)
	if err != nil {
		return err
	}
	pol, err := policy.ByName(cfg.Policy, d.seed)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.cfg = cfg
	d.provider = provider
	d.policy = pol
	d.mu.Unlock()
	return nil
}

// Config returns the configuration currently in effect.
func (d *Daemon) Config() *config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Reload re-reads the config file and swaps in a new provider and policy.
// The previous configuration stays active, and the file untouched, when it
// cannot be read, decoded or validated.
func (d *Daemon) Reload() error {
	cfg, err := config.Parse(d.cfgPath)
	if err != nil {
		return err
	}
	if err := d.apply(cfg); err != nil {
		return err
	}
	d.logger.Info("config reloaded", "provider", cfg.Provider, "policy", cfg.Policy)
	return nil
}

// Run ticks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if d.cfgPath != "" {
		go d.watchConfig(ctx)
	}

	interval := d.Config().Interval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Info("daemon started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
				d.logger.Error("rollout failed", "error", err)
			}
			if next := d.Config().Interval; next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// RunOnce plays a single episode. An empty snapshot is not an error; it
// yields a nil episode.
func (d *Daemon) RunOnce(ctx context.Context) (*model.Episode, error) {
	d.mu.Lock()
	cfg, provider, pol := d.cfg, d.provider, d.policy
	d.mu.Unlock()

	r := &rollout.Runner{
		Env:    env.New(provider, env.WithLogger(d.logger)),
		Policy: pol,
		Store:  d.store,
		Logger: d.logger,
	}
	ep, err := r.Run(ctx)
	if errors.Is(err, env.ErrEmptySnapshot) {
		d.logger.Warn("no processes in snapshot, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.checkAlert(ctx, cfg, ep)
	return ep, nil
}

func (d *Daemon) checkAlert(ctx context.Context, cfg *config.Config, ep *model.Episode) {
	if cfg.CostThreshold <= 0 || ep.Cost() < cfg.CostThreshold {
		return
	}

	now := d.now()
	if !d.lastAlert.IsZero() && now.Sub(d.lastAlert) < alertCooldown {
		return
	}

	msg := fmt.Sprintf("⚠ High scheduling cost: episode %s (%s, %d steps) cost %s",
		ep.ID, ep.Policy, ep.Steps, humanize.Commaf(ep.Cost()))
	if err := d.notify(ctx, cfg.Webhook(), msg); err != nil {
		d.logger.Warn("alert failed", "error", err)
		return
	}
	d.lastAlert = now
}

func (d *Daemon) watchConfig(ctx context.Context) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		d.logger.Warn("config watch disabled", "error", err)
		return
	}
	defer w.Close()

	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(d.cfgPath)); err != nil {
		d.logger.Warn("config watch disabled", "error", err)
		return
	}
	target := filepath.Clean(d.cfgPath)

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != target {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := d.Reload(); err != nil {
				d.logger.Error("config reload failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			d.logger.Warn("config watch error", "error", err)
		}
	}
}
