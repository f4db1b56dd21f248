package policy

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/C0okiegranny221/OSPROJECT/env"
)

// Policy chooses an action for an observation. Policies here are fixed
// baselines used to drive episodes; nothing is learned.
type Policy interface {
	Name() string
	Act(obs env.Observation) env.Action
}

type constant struct {
	action env.Action
}

// Constant always answers a.
func Constant(a env.Action) Policy {
	return constant{action: a}
}

func (c constant) Name() string                   { return "always-" + c.action.String() }
func (c constant) Act(env.Observation) env.Action { return c.action }

type random struct {
	rng   *rand.Rand
	space env.Discrete
}

// Random samples the action space uniformly.
func Random(seed int64) Policy {
	return &random{rng: rand.New(rand.NewSource(seed)), space: env.ActionSpace()}
}

func (r *random) Name() string { return "random" }

func (r *random) Act(env.Observation) env.Action {
	return r.space.Sample(r.rng)
}

type greedy struct{}

// Greedy picks the action whose cost on the observed process is smaller,
// preferring CPU on ties.
func Greedy() Policy {
	return greedy{}
}

func (greedy) Name() string { return "greedy" }

func (greedy) Act(obs env.Observation) env.Action {
	cpuCost := math.Abs(float64(obs.UserTime()) - float64(obs.SystemTime()))
	ioCost := float64(obs.MemoryBytes())
	if ioCost < cpuCost {
		return env.ActionIO
	}
	return env.ActionCPU
}

// Names lists the accepted policy names.
func Names() []string {
	return []string{"greedy", "random", "cpu", "io"}
}

// ByName resolves a policy name. seed only matters for "random".
func ByName(name string, seed int64) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy", "":
		return Greedy(), nil
	case "random":
		return Random(seed), nil
	case "cpu", "always-cpu":
		return Constant(env.ActionCPU), nil
	case "io", "always-io":
		return Constant(env.ActionIO), nil
	}
	return nil, fmt.Errorf("unknown policy %q (want one of %s)", name, strings.Join(Names(), ", "))
}
