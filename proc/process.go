package proc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Stat holds the fields of /proc/<pid>/stat that the scanner uses.
// Times are in clock ticks, RSS in pages.
type Stat struct {
	Comm      string
	State     byte
	UTime     uint64
	STime     uint64
	Priority  int64
	Nice      int64
	Threads   int64
	StartTime uint64
	VSize     uint64
	RSSPages  int64
}

// IOStat holds the byte counters of /proc/<pid>/io.
type IOStat struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// ReadStat parses <root>/<pid>/stat. Open errors are returned wrapped so
// fs.ErrNotExist and fs.ErrPermission survive; unparsable content yields
// ErrMalformed.
func ReadStat(root string, pid int) (Stat, error) {
	var st Stat

	path := filepath.Join(root, strconv.Itoa(pid), "stat")
	data, err := os.ReadFile(path)
	if err != nil {
		return st, fmt.Errorf("read %s: %w", path, err)
	}

	line := strings.TrimSpace(string(data))

	// comm may itself contain spaces and parentheses
	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l < 0 || r < 0 || r <= l {
		return st, fmt.Errorf("%s: %w", path, ErrMalformed)
	}

	st.Comm = line[l+1 : r]
	fields := strings.Fields(line[r+1:])
	if len(fields) < 22 {
		return st, fmt.Errorf("%s: %d fields: %w", path, len(fields)+2, ErrMalformed)
	}

	// fields[0] is field 3 of proc(5)
	field := func(i int) string { return fields[i-3] }

	st.State = field(3)[0]

	var perr error
	parseU := func(i int) uint64 {
		v, err := strconv.ParseUint(field(i), 10, 64)
		if err != nil && perr == nil {
			perr = err
		}
		return v
	}
	parseI := func(i int) int64 {
		v, err := strconv.ParseInt(field(i), 10, 64)
		if err != nil && perr == nil {
			perr = err
		}
		return v
	}

	st.UTime = parseU(14)
	st.STime = parseU(15)
	st.Priority = parseI(18)
	st.Nice = parseI(19)
	st.Threads = parseI(20)
	st.StartTime = parseU(22)
	st.VSize = parseU(23)
	st.RSSPages = parseI(24)
	if perr != nil {
		return st, fmt.Errorf("%s: %v: %w", path, perr, ErrMalformed)
	}
	return st, nil
}

// ReadIO parses <root>/<pid>/io. The file is only readable for processes
// owned by the caller unless running privileged.
func ReadIO(root string, pid int) (IOStat, error) {
	var io IOStat

	path := filepath.Join(root, strconv.Itoa(pid), "io")
	f, err := os.Open(path)
	if err != nil {
		return io, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			continue
		}
		switch key {
		case "read_bytes":
			io.ReadBytes = n
		case "write_bytes":
			io.WriteBytes = n
		}
	}
	if err := scanner.Err(); err != nil {
		return io, fmt.Errorf("read %s: %w", path, err)
	}
	return io, nil
}
