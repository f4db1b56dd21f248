package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/policy"
	"github.com/C0okiegranny221/OSPROJECT/rollout"
	"github.com/C0okiegranny221/OSPROJECT/ui"
)

func newRolloutCmd() *cobra.Command {
	var (
		policyName string
		episodes   int
		seed       int64
		render     bool
		persist    bool
	)

	cmd := &cobra.Command{
		Use:   "rollout",
		Short: "Play episodes with a baseline policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if episodes < 1 {
				return fmt.Errorf("--episodes must be at least 1")
			}
			if policyName == "" {
				policyName = cfg.Policy
			}
			seeded := cmd.Flags().Changed("seed")
			if !seeded {
				seed = time.Now().UnixNano()
			}

			pol, err := policy.ByName(policyName, seed)
			if err != nil {
				return err
			}
			p, err := newProvider()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			e := env.New(p, env.WithOutput(out), env.WithLogger(logger))
			defer e.Close()

			r := &rollout.Runner{Env: e, Policy: pol, Logger: logger, Render: render}
			if persist {
				st, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer st.Close()
				r.Store = st
			}

			fmt.Fprintf(out, "%-40s  %-10s  %6s  %s\n", "EPISODE", "POLICY", "STEPS", "RETURN")
			var total float64
			for i := 0; i < episodes; i++ {
				var opts []env.ResetOption
				if seeded {
					opts = append(opts, env.WithSeed(seed+int64(i)))
				}
				ep, err := r.Run(cmd.Context(), opts...)
				if err != nil {
					return fmt.Errorf("episode %d: %w", i+1, err)
				}
				total += ep.TotalReward
				fmt.Fprintf(out, "%-40s  %-10s  %6d  %s\n", ep.ID, ep.Policy, ep.Steps, ui.FormatReward(ep.TotalReward))
			}
			if episodes > 1 {
				fmt.Fprintf(out, "\nMean return over %d episodes: %s\n", episodes, ui.FormatReward(total/float64(episodes)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policyName, "policy", "", "Policy: greedy, random, cpu, io (default policy from config)")
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 1, "Number of episodes to play")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for synthetic snapshots and the random policy")
	cmd.Flags().BoolVar(&render, "render", false, "Print each observation before it is acted on")
	cmd.Flags().BoolVar(&persist, "store", false, "Record episodes in the episode database")
	return cmd
}
