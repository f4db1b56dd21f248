package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func threeRows() *monitor.Static {
	return monitor.NewStatic(
		model.ProcessRecord{PID: 1, Name: "init", UserTime: 5, SystemTime: 2, MemoryBytes: 1000},
		model.ProcessRecord{PID: 2, Name: "sh", UserTime: 1, SystemTime: 1, MemoryBytes: 500},
		model.ProcessRecord{PID: 3, Name: "top", UserTime: 9, SystemTime: 0, MemoryBytes: 4},
	)
}

// started runs Init and feeds its snapshot back into the model.
func started(t *testing.T, p monitor.Provider) Model {
	t.Helper()
	m := NewModel(context.Background(), env.New(p))
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestModelEpisodeByKeys(t *testing.T) {
	m := started(t, threeRows())
	assert.Equal(t, env.PhaseReady, m.env.Phase())
	assert.Len(t, m.table.Rows(), 3)
	assert.Equal(t, 0, m.table.Cursor())

	m = press(m, "c")
	assert.Equal(t, -3.0, m.lastReward)
	assert.Equal(t, 1, m.table.Cursor())

	m = press(m, "1")
	assert.Equal(t, -500.0, m.lastReward)
	assert.Equal(t, -503.0, m.total)
	assert.Equal(t, 2, m.table.Cursor())

	m = press(m, "g")
	assert.Equal(t, env.PhaseDone, m.env.Phase())
	assert.Equal(t, 0.0, m.lastReward)
	assert.Equal(t, 3, m.steps)
	assert.Contains(t, m.View(), "Episode finished after 3 steps")
}

func TestModelGreedyPicksCheaperAction(t *testing.T) {
	m := started(t, threeRows())
	m = press(m, "g", "g")
	// row 2 costs 0 on CPU, row 1 costs 3 on CPU vs 1000 on I/O
	assert.Equal(t, -3.0, m.total)
	assert.Equal(t, env.ActionCPU, m.lastAction)
}

func TestModelResetStartsOver(t *testing.T) {
	m := started(t, threeRows())
	m = press(m, "c", "c")

	next, cmd := m.Update(key("r"))
	m = next.(Model)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)

	assert.Equal(t, env.PhaseReady, m.env.Phase())
	assert.Equal(t, 0, m.steps)
	assert.Equal(t, 0.0, m.total)
	assert.Equal(t, 0, m.table.Cursor())
}

func TestModelSeedPrompt(t *testing.T) {
	m := started(t, monitor.NewSynthetic(4, 1))

	m = press(m, "s")
	assert.Equal(t, seedMode, m.mode)
	m = press(m, "4", "2")
	assert.Contains(t, m.View(), "Seed:")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, normalMode, m.mode)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.True(t, m.seeded)
	assert.Equal(t, int64(42), m.seed)

	want, err := monitor.NewSynthetic(4, 42).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Records, m.env.Snapshot().Records)
}

func TestModelSeedPromptCancel(t *testing.T) {
	m := started(t, threeRows())
	m = press(m, "s")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, normalMode, m.mode)
}

func TestModelEmptySnapshot(t *testing.T) {
	m := started(t, monitor.NewStatic())
	assert.True(t, m.statusError)
	assert.Contains(t, m.statusText, "no processes")
	assert.Equal(t, env.PhaseIdle, m.env.Phase())

	next, cmd := m.Update(key("c"))
	m = next.(Model)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Contains(t, m.statusText, "no episode yet")
}

func TestModelHelpAndQuit(t *testing.T) {
	m := started(t, threeRows())
	m = press(m, "?")
	assert.Equal(t, helpMode, m.mode)
	assert.Contains(t, m.View(), "ACTIONS")
	m = press(m, "x")
	assert.Equal(t, normalMode, m.mode)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPrintSnapshot(t *testing.T) {
	snap := model.Snapshot{Records: []model.ProcessRecord{
		{PID: 1, Name: "init", MemoryBytes: 2048},
		{PID: 22, Name: "bash", MemoryBytes: 512},
		{PID: 333, Name: "a-much-longer-name", MemoryBytes: 1 << 30},
	}}
	cols := []model.Column{model.ColPID, model.ColName, model.ColMemoryBytes}

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, snap, cols, 2))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"PID NAME     RSS",
		"  1 init 2.0 KiB",
		" 22 bash   512 B",
		"(2 of 3 processes)",
	}, lines)
}

func TestPrintSnapshotAllRows(t *testing.T) {
	snap := model.Snapshot{Records: []model.ProcessRecord{
		{PID: 1, UserTime: 61.5, SystemTime: 0.25, Priority: -5, MemoryBytes: 100},
	}}

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, snap, nil, 0))
	assert.Equal(t,
		"   UTIME    STIME PRIO   RSS\n"+
			"01:01.50 00:00.25   -5 100 B\n",
		buf.String())
}

func TestPrintHost(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHost(&buf, monitor.HostStats{
		Load1: 0.5, Load5: 1, Load15: 1.25, UptimeSeconds: 90061, MemTotalBytes: 1 << 30,
	}))
	assert.Equal(t, "Load average: 0.50 1.00 1.25 | Uptime: 1d 01h 01m | Memory: 1.0 GiB\n", buf.String())
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00.00"},
		{-1, "00:00.00"},
		{61.5, "01:01.50"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.in), "seconds %v", tt.in)
	}
}

func TestFormatReward(t *testing.T) {
	assert.Equal(t, "0.00", FormatReward(0))
	assert.Equal(t, "-3.00", FormatReward(-3))
	assert.Equal(t, "-1,048,576", FormatReward(-1<<20))
}

func TestPrintEpisode(t *testing.T) {
	ep := &model.Episode{
		ID: "ep_1", Policy: "greedy", Source: "static", Records: 2, Steps: 2, TotalReward: -3,
		Transitions: []model.Transition{
			{Step: 0, PID: 7, Action: 0, Reward: -3},
			{Step: 1, PID: 8, Action: 1, Terminated: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintEpisode(&buf, ep))
	out := buf.String()
	assert.Contains(t, out, "Episode ep_1\n")
	assert.Contains(t, out, "Return: -3.00")
	assert.Contains(t, out, "    0        7 cpu             -3.00\n")
	assert.Contains(t, out, "    1        8 io*              0.00\n")
}
