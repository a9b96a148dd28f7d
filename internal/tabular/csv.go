// Package tabular reads and writes the flat CSV files exchanged between
// stages.
package tabular

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
)

// Table is a header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the header matching name, ignoring case and
// surrounding whitespace, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Get returns the trimmed cell at column col of row, or "" when the row is
// short or col is negative.
func (t Table) Get(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Write writes t to path, creating parent directories. An empty table is
// still written with its header.
func Write(ctx context.Context, path string, t Table) error {
	if len(t.Rows) == 0 {
		logging.FromContext(ctx).Warn().Str("file", path).Msg("No data found")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}

	logging.FromContext(ctx).Debug().Str("file", path).Int("rows", len(t.Rows)).Msg("Wrote table")
	return nil
}

// Read reads a CSV file whose first row is the header.
func Read(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.NewNotFoundError("file", path)
		}
		return Table{}, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, errors.WrapParse("csv", path, err)
	}
	if len(rows) == 0 {
		return Table{}, errors.NewParseError("csv", path, "missing header row", nil)
	}
	return Table{Header: rows[0], Rows: rows[1:]}, nil
}
