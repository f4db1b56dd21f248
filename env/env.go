package env

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/C0okiegranny221/OSPROJECT/logging"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
)

// Environment walks a process snapshot one record per step. It is not safe
// for concurrent use.
type Environment struct {
	provider monitor.Provider
	out      io.Writer
	logger   *slog.Logger

	snapshot   model.Snapshot
	cursor     int
	state      Observation
	terminated bool
	ready      bool
	closed     bool
}

type Option func(*Environment)

// WithOutput sets where Render writes. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Environment) { e.out = w }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Environment) { e.logger = logger }
}

// New creates an environment. No snapshot is taken until Reset.
func New(provider monitor.Provider, opts ...Option) *Environment {
	e := &Environment{
		provider: provider,
		out:      os.Stdout,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "env")
	return e
}

type resetConfig struct {
	seed     *int64
	snapshot *model.Snapshot
}

type ResetOption func(*resetConfig)

// WithSeed reseeds providers that implement monitor.Seeder before capture.
func WithSeed(seed int64) ResetOption {
	return func(c *resetConfig) { c.seed = &seed }
}

// WithSnapshot starts the episode on snap instead of asking the provider.
func WithSnapshot(snap model.Snapshot) ResetOption {
	return func(c *resetConfig) { c.snapshot = &snap }
}

// Reset starts a new episode on a freshly captured snapshot and returns the
// first record as the observation. An empty snapshot fails with
// ErrEmptySnapshot and leaves the environment un-reset.
func (e *Environment) Reset(ctx context.Context, opts ...ResetOption) (Observation, Info, error) {
	var rc resetConfig
	for _, opt := range opts {
		opt(&rc)
	}

	var snap model.Snapshot
	if rc.snapshot != nil {
		snap = *rc.snapshot
	} else {
		if rc.seed != nil {
			if s, ok := e.provider.(monitor.Seeder); ok {
				s.Seed(*rc.seed)
			}
		}
		var err error
		snap, err = e.provider.Snapshot(ctx)
		if err != nil {
			e.invalidate()
			return Observation{}, nil, fmt.Errorf("acquire snapshot: %w", err)
		}
	}

	if snap.Empty() {
		e.invalidate()
		return Observation{}, nil, ErrEmptySnapshot
	}

	e.snapshot = snap
	e.cursor = 0
	e.terminated = false
	e.ready = true
	e.state = ObservationOf(snap.At(0))

	e.logger.Debug("reset", "records", snap.Len(), "source", snap.Source)
	return e.state, Info{}, nil
}

func (e *Environment) invalidate() {
	e.snapshot = model.Snapshot{}
	e.cursor = 0
	e.state = Observation{}
	e.terminated = false
	e.ready = false
}

// Step scores action against the record under the cursor, then advances
// the cursor and exposes the next record. The reward therefore belongs to
// the previous observation, not to the one returned.
//
// Once the cursor sits on the last record the episode terminates: the
// reward is zero and the observation stays put, on this and every later call.
func (e *Environment) Step(action Action) (StepResult, error) {
	if !action.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(action))
	}
	if !e.ready {
		return StepResult{}, ErrNotReset
	}

	if e.cursor >= e.snapshot.Len()-1 {
		e.terminated = true
		return StepResult{
			Observation: e.state,
			Terminated:  true,
			Info:        Info{},
		}, nil
	}

	reward := Reward(e.snapshot.At(e.cursor), action)

	e.cursor++
	e.state = ObservationOf(e.snapshot.At(e.cursor))

	return StepResult{
		Observation: e.state,
		Reward:      reward,
		Terminated:  e.terminated,
		Info:        Info{},
	}, nil
}

// Render prints the current observation.
func (e *Environment) Render() {
	fmt.Fprintf(e.out, "Current Process - UTime: %s, STime: %s, Priority: %s, Memory Usage: %s\n",
		formatComponent(e.state[0]), formatComponent(e.state[1]),
		formatComponent(e.state[2]), formatComponent(e.state[3]))
}

// formatComponent prints the shortest float32 digits, always with a
// fractional part, switching to exponent form below 1e-4 and from 1e16.
func formatComponent(v float32) string {
	abs := math.Abs(float64(v))
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(float64(v), 'e', -1, 32)
	}
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Close releases the provider when it holds resources. Safe to call twice.
func (e *Environment) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if c, ok := e.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (e *Environment) Cursor() int                { return e.cursor }
func (e *Environment) Terminated() bool           { return e.terminated }
func (e *Environment) Observation() Observation   { return e.state }
func (e *Environment) Snapshot() model.Snapshot   { return e.snapshot }
func (e *Environment) Provider() monitor.Provider { return e.provider }

// Current returns the record under the cursor.
func (e *Environment) Current() (model.ProcessRecord, bool) {
	if !e.ready {
		return model.ProcessRecord{}, false
	}
	return e.snapshot.At(e.cursor), true
}

func (e *Environment) Phase() Phase {
	switch {
	case !e.ready:
		return PhaseIdle
	case e.terminated:
		return PhaseDone
	case e.cursor == 0:
		return PhaseReady
	}
	return PhaseRunning
}
