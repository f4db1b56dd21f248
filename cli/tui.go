package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/ui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play an episode interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProvider()
			if err != nil {
				return err
			}
			e := env.New(p, env.WithOutput(io.Discard), env.WithLogger(logger))
			defer e.Close()

			return ui.Run(cmd.Context(), e, nil, nil)
		},
	}
}
