package names

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Distance is the Levenshtein distance between the lowercased forms of a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}
