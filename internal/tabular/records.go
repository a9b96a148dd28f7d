package tabular

import (
	"strings"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/records"
)

const collectionSeparator = ", "

// SheetNamesTable renders spreadsheet names. The title column is present
// when any name carries a title.
func SheetNamesTable(names []records.SheetName) Table {
	withTitle := false
	for _, n := range names {
		if n.Title != "" {
			withTitle = true
			break
		}
	}

	t := Table{Header: []string{constants.ColumnFullName, constants.ColumnFirstName, constants.ColumnLastName}}
	if withTitle {
		t.Header = append(t.Header, constants.ColumnTitle)
	}
	for _, n := range names {
		row := []string{n.FullName, n.FirstName, n.LastName}
		if withTitle {
			row = append(row, n.Title)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CreatorsTable renders library authors. The Subcollections column is
// present when any author carries a collection.
func CreatorsTable(authors []records.Author) Table {
	withCollections := HasCollections(authors)

	t := Table{Header: []string{constants.ColumnFirstName, constants.ColumnLastName, constants.ColumnFullName}}
	if withCollections {
		t.Header = append(t.Header, constants.ColumnSubcollections)
	}
	for _, a := range authors {
		row := []string{a.FirstName, a.LastName, a.FullName}
		if withCollections {
			row = append(row, a.CollectionLabel())
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ComparisonTable renders matcher output: the spreadsheet columns, then
// Appeared and, when collections is set, Subcollections.
func ComparisonTable(comparisons []records.Comparison, collections bool) Table {
	base := make([]records.SheetName, len(comparisons))
	for i, c := range comparisons {
		base[i] = c.SheetName
	}
	t := SheetNamesTable(base)

	t.Header = append(t.Header, constants.ColumnAppeared)
	if collections {
		t.Header = append(t.Header, constants.ColumnSubcollections)
	}
	for i, c := range comparisons {
		t.Rows[i] = append(t.Rows[i], c.AppearedLabel())
		if collections {
			t.Rows[i] = append(t.Rows[i], c.Collections)
		}
	}
	return t
}

// DOITable renders resolved DOIs.
func DOITable(dois []records.DOI) Table {
	t := Table{Header: []string{constants.ColumnPresentation, constants.ColumnDOI}}
	for _, d := range dois {
		t.Rows = append(t.Rows, []string{d.Title, d.DOI})
	}
	return t
}

// HasCollections reports whether any author carries a collection label.
func HasCollections(authors []records.Author) bool {
	for _, a := range authors {
		if len(a.Collections) > 0 {
			return true
		}
	}
	return false
}

// ParseSheetNames reads names written by SheetNamesTable.
func ParseSheetNames(t Table) ([]records.SheetName, error) {
	full, first, last, err := nameColumns(t, "sheet names")
	if err != nil {
		return nil, err
	}
	title := t.Column(constants.ColumnTitle)

	names := make([]records.SheetName, 0, len(t.Rows))
	for _, row := range t.Rows {
		names = append(names, records.SheetName{
			FullName:  t.Get(row, full),
			FirstName: t.Get(row, first),
			LastName:  t.Get(row, last),
			Title:     t.Get(row, title),
		})
	}
	return names, nil
}

// ParseAuthors reads authors written by CreatorsTable. The boolean reports
// whether the file has a Subcollections column.
func ParseAuthors(t Table) ([]records.Author, bool, error) {
	full, first, last, err := nameColumns(t, "creators")
	if err != nil {
		return nil, false, err
	}
	subs := t.Column(constants.ColumnSubcollections)

	authors := make([]records.Author, 0, len(t.Rows))
	for _, row := range t.Rows {
		a := records.Author{
			FirstName: t.Get(row, first),
			LastName:  t.Get(row, last),
			FullName:  t.Get(row, full),
		}
		if label := t.Get(row, subs); label != "" {
			a.Collections = strings.Split(label, collectionSeparator)
		}
		authors = append(authors, a)
	}
	return authors, subs >= 0, nil
}

func nameColumns(t Table, sheet string) (full, first, last int, err error) {
	full = t.Column(constants.ColumnFullName)
	first = t.Column(constants.ColumnFirstName)
	last = t.Column(constants.ColumnLastName)

	switch {
	case full < 0:
		err = errors.NewColumnError(sheet, constants.ColumnFullName)
	case first < 0:
		err = errors.NewColumnError(sheet, constants.ColumnFirstName)
	case last < 0:
		err = errors.NewColumnError(sheet, constants.ColumnLastName)
	}
	return full, first, last, err
}
