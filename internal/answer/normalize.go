package answer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lower-cases s and trims surrounding whitespace. Internal runs of
// whitespace are preserved so multi-word answers are not silently altered.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// A Caser carries state between calls, so each call gets its own.
	return strings.TrimSpace(cases.Lower(language.Und).String(s))
}

func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, Normalize(it))
	}
	return out
}
