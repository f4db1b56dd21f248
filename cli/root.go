package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/config"
	"github.com/C0okiegranny221/OSPROJECT/logging"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
	"github.com/C0okiegranny221/OSPROJECT/store"
)

var (
	flagConfig    string
	flagProvider  string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	cfg    *config.Config
)

// NewRootCmd creates the root cobra command for the procsched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "procsched",
		Short: "Process scheduling environment",
		Long: "procsched turns a snapshot of running processes into a step-by-step " +
			"scheduling episode, and plays, exports and records such episodes.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.procsched/config.yaml or PROCSCHED_CONFIG)")
	root.PersistentFlags().StringVar(&flagProvider, "provider", "", "Snapshot source: gopsutil, procfs, synthetic, replay")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newSnapshotCmd(),
		newExportCmd(),
		newRolloutCmd(),
		newEpisodesCmd(),
		newTUICmd(),
		newDaemonCmd(),
	)

	return root
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// setup loads the config and applies the persistent flags on top of it.
func setup(cmd *cobra.Command) error {
	loaded, err := config.LoadFrom(configPath())
	if err != nil {
		return err
	}
	if flagProvider != "" {
		loaded.Provider = flagProvider
	}
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		loaded.LogFormat = flagLogFormat
	}
	if flagDebug {
		loaded.LogLevel = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
	return nil
}

func newProvider() (monitor.Provider, error) {
	p, err := monitor.FromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("snapshot source: %w", err)
	}
	return p, nil
}

func openStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate %s: %w", cfg.DBPath, err)
	}
	return st, nil
}
