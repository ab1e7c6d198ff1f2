// Package util provides formatting helpers for user-facing dialogue text.
package util

import "strconv"

// FormatThousands renders an integer with comma thousands separators,
// e.g. 1200 -> "1,200". Used when citing step counts in dialogue.
func FormatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
