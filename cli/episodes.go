package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/store"
	"github.com/C0okiegranny221/OSPROJECT/ui"
)

func newEpisodesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "episodes [id]",
		Short: "List recorded episodes, or show the transitions of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				return showEpisode(cmd, st, args[0])
			}

			eps, err := st.ListEpisodes(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list episodes: %w", err)
			}
			if len(eps) == 0 {
				fmt.Fprintln(out, "No episodes recorded.")
				return nil
			}

			fmt.Fprintf(out, "%-40s  %-10s  %-12s  %6s  %14s  %s\n", "ID", "POLICY", "SOURCE", "STEPS", "RETURN", "STARTED")
			for _, ep := range eps {
				fmt.Fprintf(out, "%-40s  %-10s  %-12s  %6d  %14s  %s\n",
					ep.ID, ep.Policy, ep.Source, ep.Steps, ui.FormatReward(ep.TotalReward),
					ep.StartedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum episodes to list")
	return cmd
}

func showEpisode(cmd *cobra.Command, st *store.SQLiteStore, id string) error {
	ep, err := st.GetEpisode(cmd.Context(), id)
	if err != nil {
		return err
	}
	if ep == nil {
		return fmt.Errorf("episode %s not found", id)
	}
	trs, err := st.GetTransitions(cmd.Context(), id)
	if err != nil {
		return err
	}
	ep.Transitions = trs
	return ui.PrintEpisode(cmd.OutOrStdout(), ep)
}
