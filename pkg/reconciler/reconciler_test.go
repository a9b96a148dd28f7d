package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/citecheck/pkg/records"
)

func newMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

func sheetName(first, last string) records.SheetName {
	return records.SheetName{FullName: first + " " + last, FirstName: first, LastName: last}
}

func TestMatch(t *testing.T) {
	authors := []records.Author{
		{FirstName: "Jonathan", LastName: "Smith", FullName: "Jonathan Smith", Collections: []string{"Keynotes", "2019"}},
		{FirstName: "", LastName: "Lee", FullName: "Lee"},
		{FirstName: "Ravi", LastName: "", FullName: "Ravi"},
		{FirstName: "Maria", LastName: "de la Cruz", FullName: "Maria de la Cruz"},
	}

	tests := []struct {
		name        string
		row         records.SheetName
		appeared    bool
		collections string
	}{
		{"initial and family name match", sheetName("jon", "smith"), true, "Keynotes, 2019"},
		{"case-insensitive", sheetName("JON", "SMITH"), true, "Keynotes, 2019"},
		{"different initial", sheetName("Kate", "Smith"), false, ""},
		{"family name must be exact", sheetName("Jon", "Smyth"), false, ""},
		{"missing last name never matches", sheetName("Jon", ""), false, ""},
		{"missing first name never matches", sheetName("", "Lee"), false, ""},
		{"author with missing field is skipped", sheetName("Rita", "Lee"), false, ""},
		{"multi-word family name", sheetName("M.", "De La Cruz"), true, ""},
		{"surrounding whitespace ignored", sheetName(" Jo ", " Smith "), true, "Keynotes, 2019"},
	}

	m := newMatcher(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.Match(context.Background(), []records.SheetName{tt.row}, authors)
			require.Len(t, out, 1)
			assert.Equal(t, tt.appeared, out[0].Appeared)
			assert.Equal(t, tt.collections, out[0].Collections)
			assert.Equal(t, tt.row, out[0].SheetName)
		})
	}
}

func TestMatchFirstAuthorWins(t *testing.T) {
	authors := []records.Author{
		{FirstName: "Jane", LastName: "Doe", Collections: []string{"First"}},
		{FirstName: "John", LastName: "Doe", Collections: []string{"Second"}},
	}

	out := newMatcher(t).Match(context.Background(), []records.SheetName{sheetName("John", "Doe")}, authors)

	// Known false positive: Jane Doe shares the initial and surname.
	assert.True(t, out[0].Appeared)
	assert.Equal(t, "First", out[0].Collections)
}

func TestMatchWithoutCollections(t *testing.T) {
	authors := []records.Author{{FirstName: "Jon", LastName: "Smith", Collections: []string{"Keynotes"}}}

	out := newMatcher(t, WithCollections(false)).Match(context.Background(), []records.SheetName{sheetName("Jon", "Smith")}, authors)

	assert.True(t, out[0].Appeared)
	assert.Empty(t, out[0].Collections)
}

func TestMatchPreservesOrderAndShape(t *testing.T) {
	sheet := []records.SheetName{sheetName("A", "One"), sheetName("B", "Two"), sheetName("C", "Three")}
	authors := []records.Author{{FirstName: "Bea", LastName: "Two"}}

	out := newMatcher(t).Match(context.Background(), sheet, authors)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"No", "Yes", "No"}, []string{out[0].AppearedLabel(), out[1].AppearedLabel(), out[2].AppearedLabel()})
	assert.Equal(t, "A One", out[0].FullName)
}

func TestMatchEmptyInputs(t *testing.T) {
	m := newMatcher(t)
	assert.Empty(t, m.Match(context.Background(), nil, nil))

	out := m.Match(context.Background(), []records.SheetName{sheetName("Jon", "Smith")}, nil)
	require.Len(t, out, 1)
	assert.False(t, out[0].Appeared)
}
