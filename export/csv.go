package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/C0okiegranny221/OSPROJECT/model"
)

var (
	// ErrNoRows is returned when there is nothing to export.
	ErrNoRows = errors.New("no rows to export")
	// ErrKeyMismatch is returned when a row's keys differ from the first row's.
	ErrKeyMismatch = errors.New("row keys differ from header")
)

type Field struct {
	Key   string
	Value string
}

// Row is a flat record whose field order is significant.
type Row []Field

func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// RowsFromSnapshot selects cols from every record, in snapshot order.
func RowsFromSnapshot(snap model.Snapshot, cols []model.Column) []Row {
	names := model.ColumnNames(cols)
	rows := make([]Row, 0, snap.Len())
	for _, rec := range snap.Records {
		row := make(Row, len(cols))
		for i, v := range rec.Values(cols) {
			row[i] = Field{Key: names[i], Value: v}
		}
		rows = append(rows, row)
	}
	return rows
}

// Write emits a header from the first row's keys followed by one line per
// row. Every row must carry the same set of keys; values are written in
// header order.
func Write(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	header := rows[0].Keys()
	pos := make(map[string]int, len(header))
	for i, k := range header {
		if _, dup := pos[k]; dup {
			return fmt.Errorf("duplicate key %q", k)
		}
		pos[k] = i
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	line := make([]string, len(header))
	filled := make([]bool, len(header))
	for n, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d: %w", n, ErrKeyMismatch)
		}
		clear(filled)
		for _, f := range row {
			i, ok := pos[f.Key]
			if !ok {
				return fmt.Errorf("row %d: unexpected key %q: %w", n, f.Key, ErrKeyMismatch)
			}
			if filled[i] {
				return fmt.Errorf("row %d: repeated key %q: %w", n, f.Key, ErrKeyMismatch)
			}
			filled[i] = true
			line[i] = f.Value
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes rows to path. Nothing is created when rows is empty or
// invalid, and an existing file is only replaced once the new content has
// been written completely.
func WriteCSV(path string, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Write(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
