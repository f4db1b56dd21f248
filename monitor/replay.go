package monitor

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/C0okiegranny221/OSPROJECT/model"
)

// Replay serves snapshots from a CSV file written by the export command.
// The file is re-read on every call so it can be swapped between episodes.
type Replay struct {
	Path string

	logger *slog.Logger
}

func NewReplay(path string, logger *slog.Logger) *Replay {
	return &Replay{Path: path, logger: logger.With("component", "replay")}
}

var requiredColumns = []model.Column{
	model.ColUserTime,
	model.ColSystemTime,
	model.ColPriority,
	model.ColMemoryBytes,
}

func (r *Replay) Snapshot(ctx context.Context) (model.Snapshot, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	records, err := r.decode(ctx, f)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("replay %s: %w", r.Path, err)
	}
	return model.Snapshot{
		Records:    records,
		CapturedAt: time.Now(),
		Source:     "replay:" + r.Path,
	}, nil
}

func (r *Replay) decode(ctx context.Context, src io.Reader) ([]model.ProcessRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	index := make(map[model.Column]int)
	for i, name := range header {
		if c, ok := model.LookupColumn(name); ok {
			index[c] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var records []model.ProcessRecord
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := parseRow(row, index)
		if err != nil {
			r.logger.Debug("skip row", "line", line, "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRow coerces one CSV row. Rows whose observed fields are missing,
// non-numeric or negative where a non-negative value is required are
// rejected; descriptive fields fall back to zero values.
func parseRow(row []string, index map[model.Column]int) (model.ProcessRecord, error) {
	var rec model.ProcessRecord

	get := func(c model.Column) (string, bool) {
		i, ok := index[c]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var err error
	if rec.UserTime, err = nonNegative(get(model.ColUserTime)); err != nil {
		return rec, fmt.Errorf("user_time: %w", err)
	}
	if rec.SystemTime, err = nonNegative(get(model.ColSystemTime)); err != nil {
		return rec, fmt.Errorf("system_time: %w", err)
	}
	prio, err := integral(get(model.ColPriority))
	if err != nil {
		return rec, fmt.Errorf("priority: %w", err)
	}
	rec.Priority = int64(prio)
	memBytes, err := nonNegative(get(model.ColMemoryBytes))
	if err != nil {
		return rec, fmt.Errorf("memory_bytes: %w", err)
	}
	if memBytes != math.Trunc(memBytes) {
		return rec, fmt.Errorf("memory_bytes: %v is not integral", memBytes)
	}
	rec.MemoryBytes = uint64(memBytes)

	if s, ok := get(model.ColPID); ok {
		if v, err := strconv.ParseInt(s, 10, 32); err == nil {
			rec.PID = int32(v)
		}
	}
	if s, ok := get(model.ColName); ok {
		rec.Name = s
	}
	if s, ok := get(model.ColReadBytes); ok {
		rec.ReadBytes, _ = strconv.ParseUint(s, 10, 64)
	}
	if s, ok := get(model.ColWriteBytes); ok {
		rec.WriteBytes, _ = strconv.ParseUint(s, 10, 64)
	}
	return rec, nil
}

var errMissing = errors.New("missing value")

func number(s string, ok bool) (float64, error) {
	if !ok || s == "" {
		return 0, errMissing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}

func nonNegative(s string, ok bool) (float64, error) {
	v, err := number(s, ok)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%v is negative", v)
	}
	return v, nil
}

func integral(s string, ok bool) (float64, error) {
	v, err := number(s, ok)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%v is not integral", v)
	}
	return v, nil
}
