package model

import (
	"sort"
	"strings"
)

type SortColumn int

const (
	SortByPID SortColumn = iota
	SortByName
	SortByUserTime
	SortBySystemTime
	SortByPriority
	SortByMemory
)

var sortColumnNames = []string{"PID", "NAME", "UTIME", "STIME", "PRIO", "RSS"}

type Sorter struct {
	Column     SortColumn
	Descending bool
}

func NewSorter() *Sorter {
	return &Sorter{
		Column:     SortByMemory,
		Descending: true, // largest resident set first
	}
}

// ParseSortColumn accepts either the display name or the export column name.
func ParseSortColumn(name string) (SortColumn, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range sortColumnNames {
		if n == name {
			return SortColumn(i), true
		}
	}
	if c, ok := LookupColumn(name); ok {
		switch c {
		case ColPID:
			return SortByPID, true
		case ColName:
			return SortByName, true
		case ColUserTime:
			return SortByUserTime, true
		case ColSystemTime:
			return SortBySystemTime, true
		case ColPriority:
			return SortByPriority, true
		case ColMemoryBytes:
			return SortByMemory, true
		}
	}
	return 0, false
}

func (s *Sorter) Toggle(col SortColumn) {
	if s.Column == col {
		s.Descending = !s.Descending
	} else {
		s.Column = col
		s.Descending = true
	}
}

// Sort orders records in place. Ties keep their enumeration order.
func (s *Sorter) Sort(records []ProcessRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if s.Descending {
			a, b = b, a
		}

		switch s.Column {
		case SortByPID:
			return a.PID < b.PID
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByUserTime:
			return a.UserTime < b.UserTime
		case SortBySystemTime:
			return a.SystemTime < b.SystemTime
		case SortByPriority:
			return a.Priority < b.Priority
		default:
			return a.MemoryBytes < b.MemoryBytes
		}
	})
}

func (s *Sorter) ColumnName() string {
	if s.Column < 0 || int(s.Column) >= len(sortColumnNames) {
		return "?"
	}
	return sortColumnNames[s.Column]
}
