package env

import (
	"math"
	"math/rand"
)

// Discrete is the space {0, ..., N-1}.
type Discrete struct {
	N int
}

func (d Discrete) Contains(a Action) bool {
	return int(a) >= 0 && int(a) < d.N
}

func (d Discrete) Sample(rng *rand.Rand) Action {
	return Action(rng.Intn(d.N))
}

// Box bounds each observation dimension independently.
type Box struct {
	Low  Observation
	High Observation
}

func (b Box) Contains(o Observation) bool {
	for i := range o {
		v := float64(o[i])
		if math.IsNaN(v) || o[i] < b.Low[i] || o[i] > b.High[i] {
			return false
		}
	}
	return true
}

// ActionSpace is the two scheduling decisions.
func ActionSpace() Discrete {
	return Discrete{N: 2}
}

// ObservationSpace bounds times and memory below by zero. Niceness can be
// negative, so priority is unbounded.
func ObservationSpace() Box {
	inf := float32(math.Inf(1))
	return Box{
		Low:  Observation{0, 0, -inf, 0},
		High: Observation{inf, inf, inf, inf},
	}
}
