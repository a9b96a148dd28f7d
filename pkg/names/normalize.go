package names

import (
	"regexp"
	"strings"
)

var (
	// noiseTokens are markers the conference organisers typed into the author column.
	noiseTokens = regexp.MustCompile(`(?i)CANCELL?ED|PRESENTATION`)

	parenthetical = regexp.MustCompile(`\([^)]*\)`)

	leadingNonAlpha = regexp.MustCompile(`^[^\p{L}]+`)

	separators = regexp.MustCompile(`[,&]`)

	honorifics = regexp.MustCompile(`^(?i:(?:professor|prof|dr|mrs|mr|ms)\.?\s+)+`)
)

// Clean removes noise from a raw cell value without splitting it:
// cancellation and presentation markers, parenthesized asides, and any
// leading run of non-letters, in that order.
func Clean(raw string) string {
	s := noiseTokens.ReplaceAllString(raw, "")
	s = parenthetical.ReplaceAllString(s, "")
	return leadingNonAlpha.ReplaceAllString(s, "")
}

// Normalize turns one raw cell value into candidate names. The cell is cleaned,
// split on commas and ampersands, and every token is trimmed and stripped of
// leading honorifics. Empty tokens are dropped; an empty cell yields nil.
func Normalize(raw string) []string {
	cleaned := Clean(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	var candidates []string
	for _, token := range separators.Split(cleaned, -1) {
		token = strings.TrimSpace(token)
		token = strings.TrimSpace(honorifics.ReplaceAllString(token, ""))
		if token != "" {
			candidates = append(candidates, token)
		}
	}
	return candidates
}

// NormalizeAll normalizes every cell in order and concatenates the candidates.
func NormalizeAll(cells []string) []string {
	var out []string
	for _, cell := range cells {
		out = append(out, Normalize(cell)...)
	}
	return out
}
