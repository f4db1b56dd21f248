package ui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
	"github.com/C0okiegranny221/OSPROJECT/policy"
)

// Model drives one environment by hand. The table lists the snapshot in
// episode order and its highlighted row follows the environment cursor.
type Model struct {
	ctx      context.Context
	env      *env.Environment
	provider monitor.Provider
	greedy   policy.Policy

	table  table.Model
	width  int
	height int
	mode   uiMode

	seedInput textinput.Model
	seed      int64
	seeded    bool

	host    monitor.HostStats
	hasHost bool

	steps      int
	lastAction env.Action
	lastReward float64
	hasReward  bool
	total      float64

	statusText  string
	statusError bool
}

var tableColumns = []model.Column{
	model.ColPID, model.ColName, model.ColUserTime,
	model.ColSystemTime, model.ColPriority, model.ColMemoryBytes,
}

func NewModel(ctx context.Context, e *env.Environment) Model {
	widths := []int{8, 20, 11, 11, 6, 11}
	columns := make([]table.Column, len(tableColumns))
	for i, c := range tableColumns {
		columns[i] = table.Column{Title: ColumnTitle(c), Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("cyan"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "seed (integer)"
	ti.CharLimit = 20
	ti.Validate = func(v string) error {
		if v == "" || v == "-" {
			return nil
		}
		_, err := strconv.ParseInt(v, 10, 64)
		return err
	}

	return Model{
		ctx:       ctx,
		env:       e,
		provider:  e.Provider(),
		greedy:    policy.Greedy(),
		table:     t,
		mode:      normalMode,
		seedInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return acquireCmd(m.ctx, m.provider, nil)
}

// acquireCmd captures a snapshot off the UI goroutine. The environment is
// only touched from Update.
func acquireCmd(ctx context.Context, p monitor.Provider, seed *int64) tea.Cmd {
	return func() tea.Msg {
		var msg snapshotMsg
		if seed != nil {
			if s, ok := p.(monitor.Seeder); ok {
				s.Seed(*seed)
			}
			msg.seeded = true
			msg.seed = *seed
		}
		msg.snap, msg.err = p.Snapshot(ctx)
		if h, ok := p.(monitor.HostReporter); ok && msg.err == nil {
			if stats, err := h.Host(ctx); err == nil {
				msg.host = stats
				msg.hasHost = true
			}
		}
		return msg
	}
}

func (m *Model) updateTable() {
	snap := m.env.Snapshot()
	rows := make([]table.Row, 0, snap.Len())
	for _, r := range snap.Records {
		row := make(table.Row, len(tableColumns))
		for i, c := range tableColumns {
			row[i] = DisplayValue(r, c)
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	m.table.SetCursor(m.env.Cursor())
}
