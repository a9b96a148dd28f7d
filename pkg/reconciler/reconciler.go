// Package reconciler cross-references spreadsheet names against library authors.
//
// A spreadsheet name has appeared in the library when some author shares its
// first initial and its exact family name, compared case-insensitively. The
// scan is unindexed: every name walks the author list until its first hit.
package reconciler

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/records"
)

// Matcher flags spreadsheet names that also appear among library authors.
type Matcher struct {
	options *options
}

// New creates a Matcher.
func New(opts ...Option) (*Matcher, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Matcher{options: o}, nil
}

// nameKey is a lowercased first/last pair; ok is false when either is missing.
type nameKey struct {
	initial rune
	last    string
	ok      bool
}

func newNameKey(first, last string) nameKey {
	first = strings.ToLower(strings.TrimSpace(first))
	last = strings.ToLower(strings.TrimSpace(last))
	if first == "" || last == "" {
		return nameKey{}
	}
	initial, _ := utf8.DecodeRuneInString(first)
	return nameKey{initial: initial, last: last, ok: true}
}

func (c nameKey) matches(other nameKey) bool {
	return c.ok && other.ok && c.initial == other.initial && c.last == other.last
}

// Match annotates every spreadsheet name with whether it appeared among the
// authors. The first matching author wins and, when collection labels are
// enabled, its collections are copied onto the row. Rows missing a first or
// last name on either side never match.
func (m *Matcher) Match(ctx context.Context, sheet []records.SheetName, authors []records.Author) []records.Comparison {
	logger := logging.FromContext(ctx)

	lookup := make([]nameKey, len(authors))
	for i, a := range authors {
		lookup[i] = newNameKey(a.FirstName, a.LastName)
	}

	out := make([]records.Comparison, 0, len(sheet))
	matched := 0
	for _, name := range sheet {
		row := records.Comparison{SheetName: name}
		key := newNameKey(name.FirstName, name.LastName)
		if !key.ok {
			logger.Debug().Str("name", name.FullName).Msg("Skipping name with missing first or last name")
			out = append(out, row)
			continue
		}

		for i, candidate := range lookup {
			if !key.matches(candidate) {
				continue
			}
			row.Appeared = true
			if m.options.collections {
				row.Collections = authors[i].CollectionLabel()
			}
			matched++
			break
		}
		out = append(out, row)
	}

	logger.Info().
		Int("names", len(sheet)).
		Int("authors", len(authors)).
		Int("appeared", matched).
		Msg("Compared spreadsheet names with library authors")

	return out
}
