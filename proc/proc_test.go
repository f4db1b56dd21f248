package proc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statLine builds a /proc/<pid>/stat line with the given times, priority,
// nice and rss pages; the remaining fields are filler.
func statLine(pid int, comm string, utime, stime uint64, prio, nice, rss int64) string {
	return fmt.Sprintf("%d (%s) S 1 %d %d 0 -1 4194560 100 0 0 0 %d %d 0 0 %d %d 1 0 12345 10485760 %d 18446744073709551615",
		pid, comm, pid, pid, utime, stime, prio, nice, rss)
}

func writeProc(t *testing.T, root string, pid int, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestReadStat(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, 42, map[string]string{"stat": statLine(42, "tmux: server (x)", 250, 50, 20, 0, 300)})

	st, err := ReadStat(root, 42)
	require.NoError(t, err)
	assert.Equal(t, "tmux: server (x)", st.Comm)
	assert.Equal(t, byte('S'), st.State)
	assert.Equal(t, uint64(250), st.UTime)
	assert.Equal(t, uint64(50), st.STime)
	assert.Equal(t, int64(20), st.Priority)
	assert.Equal(t, int64(0), st.Nice)
	assert.Equal(t, int64(1), st.Threads)
	assert.Equal(t, uint64(12345), st.StartTime)
	assert.Equal(t, uint64(10485760), st.VSize)
	assert.Equal(t, int64(300), st.RSSPages)
}

func TestReadStatNegativeNice(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, 7, map[string]string{"stat": statLine(7, "kworker", 1, 2, 0, -20, 0)})

	st, err := ReadStat(root, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(-20), st.Nice)
}

func TestReadStatErrors(t *testing.T) {
	root := t.TempDir()

	_, err := ReadStat(root, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, IsExpected(err))

	writeProc(t, root, 2, map[string]string{"stat": "2 (short) S 1 2"})
	_, err = ReadStat(root, 2)
	assert.ErrorIs(t, err, ErrMalformed)

	writeProc(t, root, 3, map[string]string{"stat": "3 x S"})
	_, err = ReadStat(root, 3)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadIO(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, 9, map[string]string{"io": "rchar: 10\nwchar: 20\nread_bytes: 4096\nwrite_bytes: 8192\ncancelled_write_bytes: 0\n"})

	io, err := ReadIO(root, 9)
	require.NoError(t, err)
	assert.Equal(t, IOStat{ReadBytes: 4096, WriteBytes: 8192}, io)

	_, err = ReadIO(root, 10)
	assert.True(t, IsExpected(err))
}

func TestSystemReaders(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "loadavg"), []byte("0.50 0.25 0.10 1/100 999\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "uptime"), []byte("3600.12 7000.00\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "meminfo"), []byte("MemTotal:       16318460 kB\nMemFree: 1 kB\n"), 0o644))

	l1, l5, l15 := ReadLoadavg(root)
	assert.Equal(t, []float64{0.5, 0.25, 0.1}, []float64{l1, l5, l15})
	assert.InDelta(t, 3600.12, ReadUptime(root), 1e-9)
	assert.Equal(t, int64(16318460), ReadMemTotalKB(root))

	empty := t.TempDir()
	assert.Equal(t, 0.0, ReadUptime(empty))
	assert.Equal(t, int64(0), ReadMemTotalKB(empty))
}

func TestIsExpected(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{process.ErrorProcessNotRunning, true},
		{fmt.Errorf("wrapped: %w", process.ErrorNotPermitted), true},
		{&fs.PathError{Op: "open", Path: "/proc/1/io", Err: syscall.EACCES}, true},
		{&fs.PathError{Op: "open", Path: "/proc/1/stat", Err: syscall.ENOENT}, true},
		{syscall.ESRCH, true},
		{ErrIncomplete, true},
		{errors.New("disk on fire"), false},
		{&fs.PathError{Op: "read", Path: "/proc/1/stat", Err: syscall.EIO}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsExpected(tc.err), "%v", tc.err)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("1234"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("self"))
	assert.False(t, IsNumeric("12a"))
}

func TestDetectHZ(t *testing.T) {
	assert.Greater(t, DetectHZ(), 0)
}

type fakeHandle struct {
	pid      int32
	name     string
	times    *cpu.TimesStat
	timesErr error
	nice     int32
	niceErr  error
	mem      *process.MemoryInfoStat
	memErr   error
	io       *process.IOCountersStat
	ioErr    error
}

func (f *fakeHandle) PID() int32 { return f.pid }

func (f *fakeHandle) NameWithContext(context.Context) (string, error) { return f.name, nil }

func (f *fakeHandle) TimesWithContext(context.Context) (*cpu.TimesStat, error) {
	return f.times, f.timesErr
}

func (f *fakeHandle) NiceWithContext(context.Context) (int32, error) { return f.nice, f.niceErr }

func (f *fakeHandle) MemoryInfoWithContext(context.Context) (*process.MemoryInfoStat, error) {
	return f.mem, f.memErr
}

func (f *fakeHandle) IOCountersWithContext(context.Context) (*process.IOCountersStat, error) {
	return f.io, f.ioErr
}

func healthyHandle() *fakeHandle {
	return &fakeHandle{
		pid:   100,
		name:  "postgres",
		times: &cpu.TimesStat{User: 5, System: 2},
		nice:  -2,
		mem:   &process.MemoryInfoStat{RSS: 1000},
		io:    &process.IOCountersStat{ReadBytes: 11, WriteBytes: 22},
	}
}

func TestReadRecord(t *testing.T) {
	rec, err := ReadRecord(context.Background(), healthyHandle())
	require.NoError(t, err)
	assert.Equal(t, int32(100), rec.PID)
	assert.Equal(t, "postgres", rec.Name)
	assert.Equal(t, 5.0, rec.UserTime)
	assert.Equal(t, 2.0, rec.SystemTime)
	assert.Equal(t, int64(-2), rec.Priority)
	assert.Equal(t, uint64(1000), rec.MemoryBytes)
	assert.Equal(t, uint64(11), rec.ReadBytes)
	assert.Equal(t, uint64(22), rec.WriteBytes)
}

func TestReadRecordIOCountersDenied(t *testing.T) {
	h := healthyHandle()
	h.io = nil
	h.ioErr = &fs.PathError{Op: "open", Path: "/proc/100/io", Err: syscall.EACCES}

	rec, err := ReadRecord(context.Background(), h)
	require.NoError(t, err)
	assert.Zero(t, rec.ReadBytes)
	assert.Zero(t, rec.WriteBytes)
	assert.Equal(t, uint64(1000), rec.MemoryBytes)
}

func TestReadRecordRequiredFieldErrors(t *testing.T) {
	boom := errors.New("boom")

	h := healthyHandle()
	h.timesErr = process.ErrorProcessNotRunning
	_, err := ReadRecord(context.Background(), h)
	assert.True(t, IsExpected(err))

	h = healthyHandle()
	h.niceErr = boom
	_, err = ReadRecord(context.Background(), h)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsExpected(err))

	h = healthyHandle()
	h.mem = nil
	_, err = ReadRecord(context.Background(), h)
	assert.ErrorIs(t, err, ErrIncomplete)

	h = healthyHandle()
	h.ioErr = boom
	_, err = ReadRecord(context.Background(), h)
	assert.ErrorIs(t, err, boom)
}
