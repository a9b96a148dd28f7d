package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAuthors(t *testing.T) {
	authors := []Author{
		{FirstName: "Jane", LastName: "Goodall", FullName: "Jane Goodall", Collections: []string{"Primates"}},
		{FirstName: "E. O.", LastName: "Wilson", FullName: "E. O. Wilson", Collections: []string{"Ants"}},
		{FirstName: "Jane", LastName: "Goodall", FullName: "Jane Goodall", Collections: []string{"Keynotes", "Primates"}},
		{FirstName: "Jane", LastName: "Goodall", FullName: "Jane Goodall"},
	}

	merged := MergeAuthors(authors)

	assert.Len(t, merged, 2)
	assert.Equal(t, "Jane Goodall", merged[0].FullName)
	assert.Equal(t, []string{"Primates", "Keynotes"}, merged[0].Collections)
	assert.Equal(t, "Primates, Keynotes", merged[0].CollectionLabel())
	assert.Equal(t, []string{"Ants"}, merged[1].Collections)
}

func TestMergeAuthorsDoesNotAliasInput(t *testing.T) {
	shared := []string{"A"}
	authors := []Author{
		{FullName: "X Y", Collections: shared},
		{FullName: "X Y", Collections: []string{"B"}},
	}

	MergeAuthors(authors)

	assert.Equal(t, []string{"A"}, shared)
}

func TestUniqueSheetNames(t *testing.T) {
	names := []SheetName{
		{FullName: "Jon Smith", Sheet: "2022"},
		{FullName: "Kim Lee", Sheet: "2022"},
		{FullName: "Jon Smith", Sheet: "2019"},
	}

	unique := UniqueSheetNames(names)

	assert.Equal(t, []SheetName{
		{FullName: "Jon Smith", Sheet: "2022"},
		{FullName: "Kim Lee", Sheet: "2022"},
	}, unique)
}

func TestComparisonAppearedLabel(t *testing.T) {
	assert.Equal(t, "Yes", Comparison{Appeared: true}.AppearedLabel())
	assert.Equal(t, "No", Comparison{}.AppearedLabel())
}
