package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/records"
)

func TestWriteAndReadSheetNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "esa_names.csv")
	names := []records.SheetName{
		{FullName: "J. Smith", FirstName: "J.", LastName: "Smith", Title: "Bees, wasps and ants"},
		{FullName: "Madonna", FirstName: "Madonna"},
	}

	require.NoError(t, Write(context.Background(), path, SheetNamesTable(names)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Full Name,First Name,Last Name,Title of Presentation\n"+
			"J. Smith,J.,Smith,\"Bees, wasps and ants\"\n"+
			"Madonna,Madonna,,\n",
		string(data))

	table, err := Read(path)
	require.NoError(t, err)
	got, err := ParseSheetNames(table)
	require.NoError(t, err)
	assert.Equal(t, names, got)
}

func TestSheetNamesTableWithoutTitles(t *testing.T) {
	table := SheetNamesTable([]records.SheetName{{FullName: "Lu Wang", FirstName: "Lu", LastName: "Wang"}})
	assert.Equal(t, []string{"Full Name", "First Name", "Last Name"}, table.Header)
}

func TestCreatorsTable(t *testing.T) {
	authors := []records.Author{
		{FirstName: "Jane", LastName: "Goodall", FullName: "Jane Goodall", Collections: []string{"Primates", "Keynotes"}},
		{FirstName: "E. O.", LastName: "Wilson", FullName: "E. O. Wilson"},
	}

	table := CreatorsTable(authors)
	assert.Equal(t, []string{"First Name", "Last Name", "Full Name", "Subcollections"}, table.Header)
	assert.Equal(t, []string{"Jane", "Goodall", "Jane Goodall", "Primates, Keynotes"}, table.Rows[0])

	parsed, hasCollections, err := ParseAuthors(table)
	require.NoError(t, err)
	assert.True(t, hasCollections)
	assert.Equal(t, authors, parsed)

	plain := CreatorsTable([]records.Author{authors[1]})
	assert.Equal(t, []string{"First Name", "Last Name", "Full Name"}, plain.Header)
	_, hasCollections, err = ParseAuthors(plain)
	require.NoError(t, err)
	assert.False(t, hasCollections)
}

func TestComparisonTable(t *testing.T) {
	comparisons := []records.Comparison{
		{SheetName: records.SheetName{FullName: "J. Smith", FirstName: "J.", LastName: "Smith"}, Appeared: true, Collections: "2019"},
		{SheetName: records.SheetName{FullName: "Lu Wang", FirstName: "Lu", LastName: "Wang"}},
	}

	table := ComparisonTable(comparisons, true)
	assert.Equal(t, []string{"Full Name", "First Name", "Last Name", "Appeared", "Subcollections"}, table.Header)
	assert.Equal(t, [][]string{
		{"J. Smith", "J.", "Smith", "Yes", "2019"},
		{"Lu Wang", "Lu", "Wang", "No", ""},
	}, table.Rows)

	table = ComparisonTable(comparisons, false)
	assert.Equal(t, []string{"Full Name", "First Name", "Last Name", "Appeared"}, table.Header)
}

func TestDOITable(t *testing.T) {
	table := DOITable([]records.DOI{{Title: "Moss Growth", DOI: "10.1/moss"}})
	assert.Equal(t, []string{"Presentation Names", "DOI Numbers"}, table.Header)
	assert.Equal(t, [][]string{{"Moss Growth", "10.1/moss"}}, table.Rows)
}

func TestWriteEmptyTableWarns(t *testing.T) {
	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)
	path := filepath.Join(t.TempDir(), "dois_names.csv")

	require.NoError(t, Write(ctx, path, DOITable(nil)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Presentation Names,DOI Numbers\n", string(data))
	logger.AssertContains(t, "No data found")
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.IsNotFound(err))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Read(empty)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseRequiresNameColumns(t *testing.T) {
	table := Table{Header: []string{"Full Name", "First Name"}, Rows: [][]string{{"A B", "A"}}}

	_, err := ParseSheetNames(table)
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumn(err))
	assert.Contains(t, err.Error(), "Last Name")

	_, _, err = ParseAuthors(table)
	assert.True(t, errors.IsMissingColumn(err))
}

func TestColumnIgnoresCaseAndSpace(t *testing.T) {
	table := Table{Header: []string{" full name ", "Appeared"}}
	assert.Equal(t, 0, table.Column("Full Name"))
	assert.Equal(t, -1, table.Column("DOI Numbers"))
	assert.Equal(t, "", table.Get([]string{"x"}, 3))
}
