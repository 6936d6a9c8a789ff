package practice

import (
	"strconv"
	"strings"
	"unicode"
)

// parseAnswer reads an integer the way a lenient form field does:
// leading whitespace and an optional sign are accepted, then the longest
// run of decimal digits. Anything after the digits is ignored.
func parseAnswer(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign = s[:1]
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
