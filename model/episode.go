package model

import "time"

// Episode summarises one traversal of a snapshot.
type Episode struct {
	ID          string
	Policy      string
	Source      string
	Records     int // snapshot size
	Steps       int
	TotalReward float64
	StartedAt   time.Time
	FinishedAt  time.Time

	Transitions []Transition
}

// Cost is the accumulated penalty, the negated return.
func (e *Episode) Cost() float64 {
	return -e.TotalReward
}

// Transition is one step: the action taken on the record at Step, its reward
// and the observation exposed afterwards.
type Transition struct {
	Step            int
	PID             int32
	Action          int
	Reward          float64
	Observation     [4]float32
	NextObservation [4]float32
	Terminated      bool
}
