package helpers

import (
	"regexp"
	"strconv"
	"strings"
)

var spaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpace collapses runs of whitespace into single spaces and trims the
// result.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

// FormatNumber renders an integer with comma thousands separators.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
