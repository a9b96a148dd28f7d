// Package spreadsheet extracts author names and presentation titles from the
// conference workbook, one sheet per year.
package spreadsheet

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/names"
	"github.com/agentstation/citecheck/pkg/records"
)

// Result is the outcome of reading a workbook.
type Result struct {
	// Names are deduplicated per sheet, then by exact full name across sheets.
	Names []records.SheetName
	// Rejected are spellings dropped as near-duplicates.
	Rejected []string
	// Review are names that could not be split and need a manual check.
	Review []string
	// Skipped are the sheets that were missing or lacked a Professor column.
	Skipped []string
}

// Reader reads a workbook.
type Reader struct {
	path      string
	firstYear int
	lastYear  int
	dedupe    *names.Deduplicator
}

// Option configures a Reader.
type Option func(*Reader) error

// WithYears sets the sheet range; sheets are read from first down to last.
func WithYears(first, last int) Option {
	return func(r *Reader) error {
		if first < last {
			return errors.NewValidationError("first_year", first, "must not be before last_year")
		}
		r.firstYear, r.lastYear = first, last
		return nil
	}
}

// WithDeduplicator replaces the default per-sheet deduplicator.
func WithDeduplicator(d *names.Deduplicator) Option {
	return func(r *Reader) error {
		if d == nil {
			return errors.NewValidationError("deduplicator", nil, "must not be nil")
		}
		r.dedupe = d
		return nil
	}
}

// New creates a reader for the workbook at path.
func New(path string, opts ...Option) (*Reader, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewValidationError("sheet_path", path, "path is required")
	}

	d, err := names.NewDeduplicator()
	if err != nil {
		return nil, err
	}
	r := &Reader{
		path:      path,
		firstYear: constants.DefaultFirstYear,
		lastYear:  constants.DefaultLastYear,
		dedupe:    d,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SheetNames returns the year sheet names in reading order.
func (r *Reader) SheetNames() []string {
	sheets := make([]string, 0, r.firstYear-r.lastYear+1)
	for year := r.firstYear; year >= r.lastYear; year-- {
		sheets = append(sheets, strconv.Itoa(year))
	}
	return sheets
}

// Read loads the workbook and returns its deduplicated names. A path ending
// in .csv is read as a single sheet.
func (r *Reader) Read(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx)

	tables, err := r.load(ctx)
	if err != nil {
		return Result{}, err
	}

	var (
		res Result
		all []records.SheetName
	)
	for _, t := range tables {
		sheetCtx := logging.WithSheet(ctx, t.name)
		if t.rows == nil {
			logging.FromContext(sheetCtx).Warn().Msg("Sheet not found, skipping")
			res.Skipped = append(res.Skipped, t.name)
			continue
		}

		rows, err := extract(t)
		if err != nil {
			logging.FromContext(sheetCtx).Warn().Err(err).Msg("Skipping sheet")
			res.Skipped = append(res.Skipped, t.name)
			continue
		}

		candidates := make([]string, len(rows))
		titles := make(map[string]string, len(rows))
		for i, row := range rows {
			candidates[i] = row.name
			if _, ok := titles[row.name]; !ok {
				titles[row.name] = row.title
			}
		}

		deduped := r.dedupe.Dedupe(sheetCtx, candidates)
		for _, name := range deduped.Accepted {
			first, last := names.FirstLast(name)
			all = append(all, records.SheetName{
				FullName:  name,
				FirstName: first,
				LastName:  last,
				Title:     titles[name],
				Sheet:     t.name,
			})
		}
		res.Rejected = append(res.Rejected, deduped.Rejected...)
		res.Review = append(res.Review, deduped.Review...)

		logging.FromContext(sheetCtx).Debug().
			Int("candidates", len(candidates)).
			Int("accepted", len(deduped.Accepted)).
			Int("rejected", len(deduped.Rejected)).
			Msg("Read sheet")
	}

	res.Names = records.UniqueSheetNames(all)
	logger.Info().
		Str("path", r.path).
		Int("names", len(res.Names)).
		Int("skipped_sheets", len(res.Skipped)).
		Msg("Spreadsheet read")
	return res, nil
}

// table is one sheet's raw cells; rows is nil when the sheet does not exist.
type table struct {
	name string
	rows [][]string
}

func (r *Reader) load(ctx context.Context) ([]table, error) {
	if strings.EqualFold(filepath.Ext(r.path), ".csv") {
		rows, err := readCSV(r.path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path))
		return []table{{name: name, rows: rows}}, nil
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, errors.WrapIO("open", r.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("path", r.path).Msg("Failed to close workbook")
		}
	}()

	present := make(map[string]bool)
	for _, s := range f.GetSheetList() {
		present[s] = true
	}

	var tables []table
	for _, sheet := range r.SheetNames() {
		if !present[sheet] {
			tables = append(tables, table{name: sheet})
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.WrapParse("xlsx", r.path+"#"+sheet, err)
		}
		if rows == nil {
			rows = [][]string{}
		}
		tables = append(tables, table{name: sheet, rows: rows})
	}
	return tables, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}
