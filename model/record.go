package model

import "time"

// MaxRows caps how many rows the table views print.
const MaxRows = 100

// ProcessRecord is one process observed at snapshot time.
//
// UserTime, SystemTime, Priority and MemoryBytes are the fields the
// scheduling environment observes. PID, Name and the I/O counters are
// carried for display and export only.
type ProcessRecord struct {
	PID  int32
	Name string

	UserTime    float64 // seconds in user mode
	SystemTime  float64 // seconds in kernel mode
	Priority    int64   // niceness, lower runs first
	MemoryBytes uint64  // resident set size

	ReadBytes  uint64
	WriteBytes uint64
}

// Snapshot is an ordered point-in-time capture of process records.
// Records keep the provider's enumeration order and must not be mutated
// once the snapshot is handed out; use Clone to reorder.
type Snapshot struct {
	Records    []ProcessRecord
	CapturedAt time.Time
	Source     string
}

func (s Snapshot) Len() int {
	return len(s.Records)
}

func (s Snapshot) At(i int) ProcessRecord {
	return s.Records[i]
}

func (s Snapshot) Empty() bool {
	return len(s.Records) == 0
}

// Clone returns a copy whose Records slice can be sorted or filtered
// without touching the original.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Records = make([]ProcessRecord, len(s.Records))
	copy(out.Records, s.Records)
	return out
}
