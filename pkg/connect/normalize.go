package connect

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel prepares a label for comparison: Unicode NFKD
// decomposition followed by a whitespace trim. Comparison after
// normalization is exact and case-sensitive.
//
// Section labels are deliberately NOT normalized this way during item
// assembly; section deduplication trims only.
func NormalizeLabel(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(norm.NFKD.String(raw))
}
