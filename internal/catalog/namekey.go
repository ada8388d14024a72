package catalog

import "strings"

// Canonicalize reduces a display name to its comparison key: surrounding
// whitespace is trimmed and the result is case-folded. Two names denote the
// same catalog line iff their keys are equal.
func Canonicalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
