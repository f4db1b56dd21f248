package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/C0okiegranny221/OSPROJECT/env"
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
)

var columnTitles = map[model.Column]string{
	model.ColPID:         "PID",
	model.ColName:        "NAME",
	model.ColUserTime:    "UTIME",
	model.ColSystemTime:  "STIME",
	model.ColPriority:    "PRIO",
	model.ColMemoryBytes: "RSS",
	model.ColReadBytes:   "READ",
	model.ColWriteBytes:  "WRITE",
}

// ColumnTitle is the display header of c.
func ColumnTitle(c model.Column) string {
	if t, ok := columnTitles[c]; ok {
		return t
	}
	return strings.ToUpper(c.String())
}

// DisplayValue formats a field for people rather than for export.
func DisplayValue(r model.ProcessRecord, c model.Column) string {
	switch c {
	case model.ColUserTime:
		return FormatSeconds(r.UserTime)
	case model.ColSystemTime:
		return FormatSeconds(r.SystemTime)
	case model.ColMemoryBytes:
		return FormatBytes(r.MemoryBytes)
	case model.ColReadBytes:
		return FormatBytes(r.ReadBytes)
	case model.ColWriteBytes:
		return FormatBytes(r.WriteBytes)
	}
	return r.Value(c)
}

// PrintHost writes a one-line machine summary.
func PrintHost(w io.Writer, h monitor.HostStats) error {
	_, err := fmt.Fprintf(w, "Load average: %.2f %.2f %.2f | Uptime: %s | Memory: %s\n",
		h.Load1, h.Load5, h.Load15, FormatUptime(h.UptimeSeconds), FormatBytes(h.MemTotalBytes))
	return err
}

// PrintSnapshot writes the first limit records of snap as an aligned text
// table. A limit <= 0 prints every record.
func PrintSnapshot(w io.Writer, snap model.Snapshot, cols []model.Column, limit int) error {
	if len(cols) == 0 {
		cols = model.DefaultColumns
	}
	n := snap.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	cells := make([][]string, 0, n+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = ColumnTitle(c)
	}
	cells = append(cells, header)
	for _, r := range snap.Records[:n] {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = DisplayValue(r, c)
		}
		cells = append(cells, row)
	}

	widths := make([]int, len(cols))
	for _, row := range cells {
		for i, v := range row {
			widths[i] = max(widths[i], len(v))
		}
	}

	var b strings.Builder
	for _, row := range cells {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			pad := strings.Repeat(" ", widths[i]-len(v))
			switch {
			case cols[i] == model.ColName && i == len(cols)-1:
				b.WriteString(v)
			case cols[i] == model.ColName:
				b.WriteString(v + pad)
			default:
				b.WriteString(pad + v)
			}
		}
		b.WriteByte('\n')
	}
	if n < snap.Len() {
		fmt.Fprintf(&b, "(%d of %d processes)\n", n, snap.Len())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintEpisode writes an episode summary followed by its transitions.
func PrintEpisode(w io.Writer, ep *model.Episode) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Episode %s\n", ep.ID)
	fmt.Fprintf(&b, "Policy: %s | Source: %s | Records: %d | Steps: %d | Return: %s\n",
		ep.Policy, ep.Source, ep.Records, ep.Steps, FormatReward(ep.TotalReward))
	if !ep.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Duration: %s\n", ep.FinishedAt.Sub(ep.StartedAt).Round(time.Microsecond))
	}

	if len(ep.Transitions) > 0 {
		fmt.Fprintf(&b, "\n%5s %8s %-6s %14s\n", "STEP", "PID", "ACTION", "REWARD")
		for _, tr := range ep.Transitions {
			action := env.Action(tr.Action).String()
			if tr.Terminated {
				action += "*"
			}
			fmt.Fprintf(&b, "%5d %8d %-6s %14s\n", tr.Step, tr.PID, action, FormatReward(tr.Reward))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
