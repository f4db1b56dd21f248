package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/export"
	"github.com/C0okiegranny221/OSPROJECT/model"
)

func newExportCmd() *cobra.Command {
	var (
		out     string
		columns string
		sortBy  string
		desc    bool
	)

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the current process table as CSV",
		Long: "Capture a snapshot and write it as CSV, one row per process, with a header " +
			"taken from the selected columns. Use - as the path to write to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := out
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = cfg.ExportPath
			}
			if !cmd.Flags().Changed("columns") {
				columns = cfg.ExportColumns
			}

			cols, err := model.ParseColumns(columns)
			if err != nil {
				return err
			}
			snap, err := captureSorted(cmd, sortBy, desc)
			if err != nil {
				return err
			}
			rows := export.RowsFromSnapshot(snap.Snapshot, cols)

			if path == "-" {
				err = export.Write(cmd.OutOrStdout(), rows)
			} else {
				err = export.WriteCSV(path, rows)
			}
			if errors.Is(err, export.ErrNoRows) {
				return fmt.Errorf("nothing to export: %w", err)
			}
			if err != nil {
				return err
			}

			if path != "-" {
				logger.Info("exported", "path", path, "rows", len(rows))
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default export_path from config)")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma separated columns (default: the observed fields)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by PID, NAME, UTIME, STIME, PRIO or RSS")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}
