package proc

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
)

var (
	// ErrIncomplete marks a process whose required fields came back empty.
	ErrIncomplete = errors.New("incomplete process record")
	// ErrMalformed marks a procfs entry that could not be parsed.
	ErrMalformed = errors.New("malformed procfs entry")
)

// IsExpected reports whether err means the process should be dropped from
// the snapshot instead of failing the scan. Processes that exit between
// enumeration and read, or that we may not inspect, fall in this class.
func IsExpected(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, process.ErrorNotPermitted),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, syscall.ESRCH),
		errors.Is(err, ErrIncomplete),
		errors.Is(err, ErrMalformed):
		return true
	}
	return false
}

// gopsutil reports missing platform support with a plain error value
// from an internal package, so it can only be matched by text.
func isUnsupported(err error) bool {
	return err != nil && err.Error() == "not implemented yet"
}
