package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/daemon"
	"github.com/C0okiegranny221/OSPROJECT/store"
)

func newDaemonCmd() *cobra.Command {
	var noStore bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Play an episode every interval and alert on expensive ones",
		Long: "Run a rollout with the configured policy every interval, record it, and post " +
			"to the active webhook when the episode cost reaches cost_threshold. " +
			"Edits to the config file are picked up without a restart.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var st *store.SQLiteStore
			if !noStore {
				var err error
				if st, err = openStore(cmd); err != nil {
					return err
				}
				defer st.Close()
			}

			var d *daemon.Daemon
			var err error
			// keep a nil store a nil interface
			if st != nil {
				d, err = daemon.New(cfg, configPath(), st, logger)
			} else {
				d, err = daemon.New(cfg, configPath(), nil, logger)
			}
			if err != nil {
				return err
			}

			err = d.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				logger.Info("daemon stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noStore, "no-store", false, "Do not record episodes")
	return cmd
}
