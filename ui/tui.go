package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/C0okiegranny221/OSPROJECT/env"
)

// Run opens the episode player on e and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, e *env.Environment, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	p := tea.NewProgram(NewModel(ctx, e), opts...)
	_, err := p.Run()
	return err
}
