package model

import (
	"fmt"
	"strconv"
	"strings"
)

type Column int

const (
	ColPID Column = iota
	ColName
	ColUserTime
	ColSystemTime
	ColPriority
	ColMemoryBytes
	ColReadBytes
	ColWriteBytes
)

var columnNames = []string{
	"pid",
	"name",
	"user_time",
	"system_time",
	"priority",
	"memory_bytes",
	"read_bytes",
	"write_bytes",
}

// DefaultColumns are the observed fields, in observation order.
var DefaultColumns = []Column{ColUserTime, ColSystemTime, ColPriority, ColMemoryBytes}

// AllColumns lists every exportable field.
var AllColumns = []Column{
	ColPID, ColName, ColUserTime, ColSystemTime,
	ColPriority, ColMemoryBytes, ColReadBytes, ColWriteBytes,
}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// LookupColumn resolves a column by its export name.
func LookupColumn(name string) (Column, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// ParseColumns parses a comma separated column list. An empty string
// yields DefaultColumns. Duplicates are rejected since an exported header
// must not repeat a key.
func ParseColumns(s string) ([]Column, error) {
	if strings.TrimSpace(s) == "" {
		return append([]Column(nil), DefaultColumns...), nil
	}
	seen := make(map[Column]bool)
	var cols []Column
	for _, tok := range strings.Split(s, ",") {
		c, ok := LookupColumn(tok)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", strings.TrimSpace(tok))
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
		cols = append(cols, c)
	}
	return cols, nil
}

// Value formats a single field of the record.
func (r ProcessRecord) Value(c Column) string {
	switch c {
	case ColPID:
		return strconv.FormatInt(int64(r.PID), 10)
	case ColName:
		return r.Name
	case ColUserTime:
		return strconv.FormatFloat(r.UserTime, 'f', -1, 64)
	case ColSystemTime:
		return strconv.FormatFloat(r.SystemTime, 'f', -1, 64)
	case ColPriority:
		return strconv.FormatInt(r.Priority, 10)
	case ColMemoryBytes:
		return strconv.FormatUint(r.MemoryBytes, 10)
	case ColReadBytes:
		return strconv.FormatUint(r.ReadBytes, 10)
	case ColWriteBytes:
		return strconv.FormatUint(r.WriteBytes, 10)
	}
	return ""
}

// Values formats the selected fields in column order.
func (r ProcessRecord) Values(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.Value(c)
	}
	return out
}

// ColumnNames maps columns to their export names.
func ColumnNames(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.String()
	}
	return out
}
