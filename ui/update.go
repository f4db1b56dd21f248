package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/C0okiegranny221/OSPROJECT/env"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case helpMode:
			return m.handleHelpMode(msg)
		case seedMode:
			return m.handleSeedMode(msg)
		}
		return m.handleNormalMode(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-12, 3))
		return m, nil

	case snapshotMsg:
		return m.handleSnapshot(msg)

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		return m, nil
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?", "h":
		m.mode = helpMode
		return m, nil

	case "c", "0":
		return m.step(env.ActionCPU)
	case "i", "1":
		return m.step(env.ActionIO)
	case "g":
		return m.step(m.greedy.Act(m.env.Observation()))

	case "r":
		m.statusText = "capturing snapshot..."
		m.statusError = false
		return m, acquireCmd(m.ctx, m.provider, nil)

	case "s":
		m.mode = seedMode
		m.seedInput.SetValue("")
		m.seedInput.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) handleSeedMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = normalMode
		m.seedInput.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.seedInput.Value())
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return m, m.showStatus(fmt.Sprintf("invalid seed %q", value), true)
		}
		m.mode = normalMode
		m.seedInput.Blur()
		m.statusText = fmt.Sprintf("capturing snapshot with seed %d...", seed)
		m.statusError = false
		return m, acquireCmd(m.ctx, m.provider, &seed)
	}

	var cmd tea.Cmd
	m.seedInput, cmd = m.seedInput.Update(msg)
	return m, cmd
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}
	m.mode = normalMode
	return m, nil
}

func (m Model) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusText = fmt.Sprintf("Error: %v", msg.err)
		m.statusError = true
		return m, nil
	}

	_, _, err := m.env.Reset(m.ctx, env.WithSnapshot(msg.snap))
	m.steps = 0
	m.total = 0
	m.hasReward = false
	m.seeded, m.seed = msg.seeded, msg.seed
	if msg.hasHost {
		m.host, m.hasHost = msg.host, true
	}
	m.updateTable()

	if errors.Is(err, env.ErrEmptySnapshot) {
		m.statusText = "no processes captured, press r to retry"
		m.statusError = true
		return m, nil
	}
	if err != nil {
		m.statusText = fmt.Sprintf("Error: %v", err)
		m.statusError = true
		return m, nil
	}

	m.statusText = fmt.Sprintf("new episode: %d processes from %s", msg.snap.Len(), msg.snap.Source)
	m.statusError = false
	return m, nil
}

func (m Model) step(a env.Action) (tea.Model, tea.Cmd) {
	res, err := m.env.Step(a)
	if errors.Is(err, env.ErrNotReset) {
		return m, m.showStatus("no episode yet, press r to capture one", true)
	}
	if err != nil {
		return m, m.showStatus(fmt.Sprintf("Error: %v", err), true)
	}

	m.steps++
	m.lastAction = a
	m.lastReward = res.Reward
	m.hasReward = true
	m.total += res.Reward
	m.table.SetCursor(m.env.Cursor())

	if res.Terminated {
		m.statusText = fmt.Sprintf("episode finished, return %s", FormatReward(m.total))
	} else {
		m.statusText = fmt.Sprintf("%s scored %s", a, FormatReward(res.Reward))
	}
	m.statusError = false
	return m, nil
}

func (m Model) showStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
