package buffer

import (
	"golang.org/x/text/unicode/norm"
	"unicode/utf8"
)

// NextCharBoundary returns the length in bytes of the first user-perceived character in s.
func NextCharBoundary(s string) int {
	if len(s) == 0 {
		return 0
	}
	if len(s) == 1 || (len(s) >= 2 && s[0] <= utf8.RuneSelf && s[1] <= utf8.RuneSelf) {
		return 1
	}
	if n := norm.NFC.NextBoundaryInString(s, true); n > 0 {
		return n
	}
	// Invalid UTF-8 has no boundary; step over a single byte.
	return 1
}
