package rollout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/logging"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/policy"
)

// Store persists finished episodes.
type Store interface {
	SaveEpisode(ctx context.Context, ep *model.Episode) error
}

// Runner plays whole episodes of an environment with a fixed policy.
type Runner struct {
	Env    *env.Environment
	Policy policy.Policy
	Store  Store // optional
	Logger *slog.Logger

	// Render dumps the observation before every step.
	Render bool
}

// Run resets the environment and steps it until termination.
func (r *Runner) Run(ctx context.Context, opts ...env.ResetOption) (*model.Episode, error) {
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	started := time.Now()
	obs, _, err := r.Env.Reset(ctx, opts...)
	if err != nil {
		return nil, err
	}
	snap := r.Env.Snapshot()

	ep := &model.Episode{
		ID:        "ep_" + uuid.NewString(),
		Policy:    r.Policy.Name(),
		Source:    snap.Source,
		Records:   snap.Len(),
		StartedAt: started,
	}
	logger = logger.With("component", "rollout", "episode", ep.ID)
	logger.Debug("episode started", "records", ep.Records, "policy", ep.Policy)

	for {
		if err := ctx.Err(); err != nil {
			return ep, err
		}
		if r.Render {
			r.Env.Render()
		}

		rec, _ := r.Env.Current()
		step := r.Env.Cursor()
		action := r.Policy.Act(obs)

		res, err := r.Env.Step(action)
		if err != nil {
			return ep, fmt.Errorf("step %d: %w", step, err)
		}

		ep.Transitions = append(ep.Transitions, model.Transition{
			Step:            step,
			PID:             rec.PID,
			Action:          int(action),
			Reward:          res.Reward,
			Observation:     [4]float32(obs),
			NextObservation: [4]float32(res.Observation),
			Terminated:      res.Terminated,
		})
		ep.Steps++
		ep.TotalReward += res.Reward
		obs = res.Observation

		if res.Terminated || res.Truncated {
			break
		}
	}
	ep.FinishedAt = time.Now()

	logger.Info("episode finished",
		"steps", ep.Steps,
		"return", ep.TotalReward,
		"duration", ep.FinishedAt.Sub(ep.StartedAt))

	if r.Store != nil {
		if err := r.Store.SaveEpisode(ctx, ep); err != nil {
			return ep, fmt.Errorf("save episode: %w", err)
		}
	}
	return ep, nil
}
