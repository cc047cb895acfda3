package augment

import (
	"regexp"
	"strings"
)

var leadingNumbers = regexp.MustCompile(`^[\d\s\.]*`)

// RemoveLeadingNumbers strips an enumeration prefix such as "12. " or "3 ".
func RemoveLeadingNumbers(s string) string {
	return leadingNumbers.ReplaceAllString(s, "")
}

// Filter decides which generated lines are kept.
type Filter struct {
	Required []string
	Banned   []string
}

// Accept normalizes a single line and reports whether it passes. The
// returned string is only meaningful when ok is true.
func (f Filter) Accept(line string) (string, bool) {
	line = RemoveLeadingNumbers(strings.TrimSpace(line))
	if line == "" {
		return "", false
	}
	for _, phrase := range f.Required {
		if !strings.Contains(line, phrase) {
			return "", false
		}
	}
	for _, phrase := range f.Banned {
		if strings.Contains(line, phrase) {
			return "", false
		}
	}
	return line, true
}

// Parse splits a raw completion into lines and keeps the accepted ones in
// order.
func (f Filter) Parse(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if kept, ok := f.Accept(line); ok {
			out = append(out, kept)
		}
	}
	return out
}
