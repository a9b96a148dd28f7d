// Package names cleans, splits, parses and deduplicates free-text author names.
//
// A spreadsheet cell such as
//
//	"Dr. J. Smith, K. Lee (cancelled) & R. Diaz"
//
// is normalized into the candidates "J. Smith", "K. Lee" and "R. Diaz". The
// Deduplicator then collapses near-identical spellings: two names that share a
// first initial and family name and sit within a small edit distance of each
// other are treated as the same person, and the first spelling seen is kept.
package names
