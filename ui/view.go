package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/C0okiegranny221/OSPROJECT/env"
)

func (m Model) View() string {
	if m.mode == helpMode {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(m.renderHeader()))
	b.WriteString("\n")
	if m.hasHost {
		b.WriteString(hostStyle.Render(m.renderHost()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.mode == normalMode {
		b.WriteString(m.renderQuickHelp())
		b.WriteString("\n")
	}

	if m.env.Phase() == env.PhaseDone {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render(fmt.Sprintf("Episode finished after %d steps, return %s. Press r for a new one.",
			m.steps, FormatReward(m.total))))
		b.WriteString("\n")
	}

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	if m.mode == seedMode {
		b.WriteString("\n")
		b.WriteString(m.renderSeedBar())
	}

	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("PROCSCHED - Scheduling Episode")
	return lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center).
		Render(title)
}

func (m Model) renderHeader() string {
	snap := m.env.Snapshot()
	header := fmt.Sprintf("Phase: %s | Step: %d | Row: %d/%d",
		m.env.Phase(), m.steps, min(m.env.Cursor()+1, snap.Len()), snap.Len())

	last := "-"
	if m.hasReward {
		last = fmt.Sprintf("%s (%s)", m.renderReward(m.lastReward), m.lastAction)
	}
	header += fmt.Sprintf(" | Last reward: %s | Return: %s", last, m.renderReward(m.total))

	if snap.Source != "" {
		header += " | Source: " + snap.Source
	}
	if m.seeded {
		header += fmt.Sprintf(" | Seed: %d", m.seed)
	}
	return header
}

func (m Model) renderReward(r float64) string {
	if r == 0 {
		return zeroStyle.Render(FormatReward(r))
	}
	return costStyle.Render(FormatReward(r))
}

func (m Model) renderHost() string {
	return fmt.Sprintf("Load: %.2f %.2f %.2f | Uptime: %s | Memory: %s",
		m.host.Load1, m.host.Load5, m.host.Load15,
		FormatUptime(m.host.UptimeSeconds), FormatBytes(m.host.MemTotalBytes))
}

func (m Model) renderQuickHelp() string {
	quickHelp := fmt.Sprintf(
		"%s CPU | %s I/O | %s Greedy | %s Reset | %s Seed | %s Help | %s Quit",
		keybindStyle.Render("[c/0]"),
		keybindStyle.Render("[i/1]"),
		keybindStyle.Render("[g]"),
		keybindStyle.Render("[r]"),
		keybindStyle.Render("[s]"),
		keybindStyle.Render("[?]"),
		keybindStyle.Render("[q]"),
	)
	return keybindDescStyle.Render(quickHelp)
}

func (m Model) renderStatus() string {
	style := successStyle
	if m.statusError {
		style = errorStyle
	}
	return style.Render(m.statusText)
}

func (m Model) renderSeedBar() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Render("Seed: ") +
		m.seedInput.View() +
		keybindDescStyle.Render(" (Enter to reset, Esc to cancel)")
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "ACTIONS",
			keys: []struct{ key, desc string }{
				{"c / 0", "Schedule on CPU (cost |utime - stime|)"},
				{"i / 1", "Schedule for I/O (cost resident memory)"},
				{"g", "Take the cheaper of the two"},
				{"", "The reward shown belongs to the row you just left"},
			},
		},
		{
			title: "EPISODES",
			keys: []struct{ key, desc string }{
				{"r", "Capture a new snapshot and restart"},
				{"s", "Restart with a seed (synthetic source)"},
			},
		},
		{
			title: "GENERAL",
			keys: []struct{ key, desc string }{
				{"?/h", "Show/hide this help"},
				{"q", "Quit program"},
				{"Ctrl+C", "Force quit"},
			},
		},
	}

	for _, section := range sections {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true).
			Render(section.title))
		b.WriteString("\n")

		for _, binding := range section.keys {
			if binding.key == "" {
				b.WriteString(keybindDescStyle.Render("  " + binding.desc))
			} else {
				line := fmt.Sprintf("  %s  %s",
					keybindStyle.Render(lipgloss.NewStyle().Width(12).Render(binding.key)),
					keybindDescStyle.Render(binding.desc))
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(keybindDescStyle.Render("Press any key to return..."))

	return helpBoxStyle.Render(b.String())
}
