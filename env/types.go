package env

import (
	"errors"
	"fmt"
	"math"

	"github.com/C0okiegranny221/OSPROJECT/model"
)

var (
	// ErrEmptySnapshot is returned by Reset when the provider found no
	// readable process, so there is no first observation to expose.
	ErrEmptySnapshot = errors.New("empty snapshot")
	// ErrInvalidAction is returned by Step for actions outside the action space.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotReset is returned by Step before the first successful Reset.
	ErrNotReset = errors.New("environment not reset")
)

// Action is the scheduling decision taken for the current process.
type Action int

const (
	// ActionCPU treats the current process as CPU-bound.
	ActionCPU Action = 0
	// ActionIO treats the current process as I/O-bound.
	ActionIO Action = 1
)

func (a Action) Valid() bool {
	return a == ActionCPU || a == ActionIO
}

func (a Action) String() string {
	switch a {
	case ActionCPU:
		return "cpu"
	case ActionIO:
		return "io"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction accepts "0", "1", "cpu" or "io".
func ParseAction(s string) (Action, error) {
	switch s {
	case "0", "cpu":
		return ActionCPU, nil
	case "1", "io":
		return ActionIO, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Observation is [user_time, system_time, priority, memory_bytes].
type Observation [4]float32

func ObservationOf(r model.ProcessRecord) Observation {
	return Observation{
		float32(r.UserTime),
		float32(r.SystemTime),
		float32(r.Priority),
		float32(r.MemoryBytes),
	}
}

func (o Observation) UserTime() float32    { return o[0] }
func (o Observation) SystemTime() float32  { return o[1] }
func (o Observation) Priority() float32    { return o[2] }
func (o Observation) MemoryBytes() float32 { return o[3] }

// Info carries auxiliary step data. Always empty today.
type Info map[string]any

type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
}

// Phase is where an episode stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseRunning
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhaseRunning:
		return "RUNNING"
	case PhaseDone:
		return "DONE"
	}
	return "IDLE"
}

// Reward is the cost of taking action on record r. It never exceeds zero:
// a CPU decision costs the imbalance between user and kernel time, an I/O
// decision costs the resident memory.
func Reward(r model.ProcessRecord, a Action) float64 {
	if a == ActionCPU {
		return -math.Abs(r.UserTime - r.SystemTime)
	}
	return -float64(r.MemoryBytes)
}
