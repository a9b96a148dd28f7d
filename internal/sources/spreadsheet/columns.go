package spreadsheet

import (
	"strings"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/names"
)

// row is one candidate name with the title of the row it came from.
type row struct {
	name  string
	title string
}

// extract locates the Professor and title columns in the header row and
// splits every Professor cell into candidate names.
func extract(t table) ([]row, error) {
	if len(t.rows) == 0 {
		return nil, errors.NewColumnError(t.name, constants.ColumnProfessor)
	}

	header := t.rows[0]
	prof := findColumn(header, constants.ProfessorColumnAliases)
	if prof < 0 {
		return nil, errors.NewColumnError(t.name, constants.ColumnProfessor)
	}
	title := findColumn(header, constants.TitleColumnAliases)

	var out []row
	for _, cells := range t.rows[1:] {
		var presentation string
		if title >= 0 {
			presentation = strings.TrimSpace(cell(cells, title))
		}
		for _, name := range names.Normalize(cell(cells, prof)) {
			out = append(out, row{name: name, title: presentation})
		}
	}
	return out, nil
}

// findColumn returns the index of the first header matching any alias after
// collapsing whitespace and folding case, or -1.
func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = canonical(h)
		for _, alias := range aliases {
			if strings.EqualFold(h, canonical(alias)) {
				return i
			}
		}
	}
	return -1
}

func canonical(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
