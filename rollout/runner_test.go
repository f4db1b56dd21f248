package rollout

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
	"github.com/C0okiegranny221/OSPROJECT/policy"
)

type memStore struct {
	saved []*model.Episode
	err   error
}

func (m *memStore) SaveEpisode(_ context.Context, ep *model.Episode) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, ep)
	return nil
}

func threeRows() *monitor.Static {
	return monitor.NewStatic(
		model.ProcessRecord{PID: 1, UserTime: 5, SystemTime: 2, MemoryBytes: 1000},
		model.ProcessRecord{PID: 2, UserTime: 1, SystemTime: 1, MemoryBytes: 500},
		model.ProcessRecord{PID: 3, UserTime: 9, SystemTime: 0, MemoryBytes: 4},
	)
}

func TestRunAlwaysCPU(t *testing.T) {
	st := &memStore{}
	r := &Runner{
		Env:    env.New(threeRows()),
		Policy: policy.Constant(env.ActionCPU),
		Store:  st,
	}

	ep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ep.ID, "ep_"))
	assert.Equal(t, "always-cpu", ep.Policy)
	assert.Equal(t, 3, ep.Records)
	// N-1 scoring steps plus the terminating one.
	assert.Equal(t, 3, ep.Steps)
	assert.Equal(t, -3.0, ep.TotalReward)
	assert.Equal(t, 3.0, ep.Cost())
	require.Len(t, ep.Transitions, 3)

	first := ep.Transitions[0]
	assert.Equal(t, int32(1), first.PID)
	assert.Equal(t, [4]float32{5, 2, 0, 1000}, first.Observation)
	assert.Equal(t, [4]float32{1, 1, 0, 500}, first.NextObservation)

	last := ep.Transitions[2]
	assert.True(t, last.Terminated)
	assert.Equal(t, 0.0, last.Reward)
	assert.Equal(t, int32(3), last.PID)

	require.Len(t, st.saved, 1)
	assert.Same(t, ep, st.saved[0])
	assert.False(t, ep.FinishedAt.Before(ep.StartedAt))
}

func TestRunGreedyBeatsConstant(t *testing.T) {
	run := func(p policy.Policy) float64 {
		r := &Runner{Env: env.New(monitor.NewSynthetic(50, 11)), Policy: p}
		ep, err := r.Run(context.Background(), env.WithSeed(11))
		require.NoError(t, err)
		return ep.TotalReward
	}
	greedy := run(policy.Greedy())
	assert.GreaterOrEqual(t, greedy, run(policy.Constant(env.ActionCPU)))
	assert.GreaterOrEqual(t, greedy, run(policy.Constant(env.ActionIO)))
}

func TestRunRender(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{
		Env:    env.New(threeRows(), env.WithOutput(&buf)),
		Policy: policy.Greedy(),
		Render: true,
	}
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(buf.String(), "Current Process"))
}

func TestRunEmptySnapshot(t *testing.T) {
	st := &memStore{}
	r := &Runner{Env: env.New(monitor.NewStatic()), Policy: policy.Greedy(), Store: st}
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, env.ErrEmptySnapshot)
	assert.Empty(t, st.saved)
}

func TestRunStoreError(t *testing.T) {
	boom := errors.New("disk full")
	r := &Runner{Env: env.New(threeRows()), Policy: policy.Greedy(), Store: &memStore{err: boom}}
	ep, err := r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, ep)
	assert.Equal(t, 3, ep.Steps)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Env: env.New(threeRows()), Policy: policy.Greedy()}

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
