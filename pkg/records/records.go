// Package records defines the rows that flow between the citecheck stages:
// names parsed from the conference spreadsheet, authors scanned from the
// Zotero library, the comparison between the two, and DOI lookups.
package records

import "strings"

// SheetName is one deduplicated author name taken from the spreadsheet.
type SheetName struct {
	FullName  string `json:"full_name" yaml:"full_name"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Sheet     string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// Author is one creator found in the reference library.
type Author struct {
	FirstName   string   `json:"first_name" yaml:"first_name"`
	LastName    string   `json:"last_name" yaml:"last_name"`
	FullName    string   `json:"full_name" yaml:"full_name"`
	Collections []string `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// CollectionLabel joins the author's collection names the way they are
// written to the Subcollections column.
func (a Author) CollectionLabel() string {
	return strings.Join(a.Collections, ", ")
}

// Comparison is a spreadsheet name annotated with whether it appeared in the
// library. Collections is empty unless Appeared is true.
type Comparison struct {
	SheetName
	Appeared    bool   `json:"appeared" yaml:"appeared"`
	Collections string `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// AppearedLabel renders Appeared as the Yes/No value written to CSV.
func (c Comparison) AppearedLabel() string {
	if c.Appeared {
		return "Yes"
	}
	return "No"
}

// DOI is a presentation title resolved to a persistent identifier.
type DOI struct {
	Title string `json:"title" yaml:"title"`
	DOI   string `json:"doi" yaml:"doi"`
}

// MergeAuthors drops authors whose full name was already seen, merging their
// collection labels into the first occurrence. Order is preserved.
func MergeAuthors(authors []Author) []Author {
	index := make(map[string]int, len(authors))
	merged := make([]Author, 0, len(authors))
	for _, a := range authors {
		i, ok := index[a.FullName]
		if !ok {
			index[a.FullName] = len(merged)
			a.Collections = appendUnique(nil, a.Collections...)
			merged = append(merged, a)
			continue
		}
		merged[i].Collections = appendUnique(merged[i].Collections, a.Collections...)
	}
	return merged
}

// UniqueSheetNames drops names whose full name was already seen; first wins.
func UniqueSheetNames(names []SheetName) []SheetName {
	seen := make(map[string]struct{}, len(names))
	out := make([]SheetName, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n.FullName]; ok {
			continue
		}
		seen[n.FullName] = struct{}{}
		out = append(out, n)
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		found := false
		for _, d := range dst {
			if d == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
