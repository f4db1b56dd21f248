package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
	"github.com/C0okiegranny221/OSPROJECT/ui"
)

const tableColumns = "pid,name,user_time,system_time,priority,memory_bytes"

func newSnapshotCmd() *cobra.Command {
	var (
		sortBy  string
		desc    bool
		limit   int
		columns string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture and print the current process table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := model.ParseColumns(columns)
			if err != nil {
				return err
			}
			snap, err := captureSorted(cmd, sortBy, desc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if h, ok := snap.provider.(monitor.HostReporter); ok {
				if stats, err := h.Host(cmd.Context()); err == nil {
					ui.PrintHost(out, stats)
				} else {
					logger.Debug("host stats unavailable", "error", err)
				}
			}
			if snap.Empty() {
				fmt.Fprintln(out, "No processes captured.")
				return nil
			}
			return ui.PrintSnapshot(out, snap.Snapshot, cols, limit)
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by PID, NAME, UTIME, STIME, PRIO or RSS (default: enumeration order)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&limit, "limit", model.MaxRows, "Maximum rows to print (0 for all)")
	cmd.Flags().StringVar(&columns, "columns", tableColumns, "Comma separated columns")
	return cmd
}

type capture struct {
	model.Snapshot
	provider monitor.Provider
}

func captureSorted(cmd *cobra.Command, sortBy string, desc bool) (capture, error) {
	p, err := newProvider()
	if err != nil {
		return capture{}, err
	}
	snap, err := p.Snapshot(cmd.Context())
	if err != nil {
		return capture{}, fmt.Errorf("capture snapshot: %w", err)
	}

	if sortBy != "" {
		col, ok := model.ParseSortColumn(sortBy)
		if !ok {
			return capture{}, fmt.Errorf("unknown sort column %q", sortBy)
		}
		sorter := &model.Sorter{Column: col, Descending: desc}
		sorter.Sort(snap.Records)
	}
	return capture{Snapshot: snap, provider: p}, nil
}
