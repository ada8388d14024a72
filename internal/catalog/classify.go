package catalog

import (
	"strings"
	"unicode/utf8"
)

// CategoryOther is the catch-all bucket for names that start with neither the
// ZG prefix nor an ASCII letter.
const CategoryOther = "其他"

// CategoryAll is the sentinel that disables category filtering in Query.
const CategoryAll = "all"

// Classify derives the coarse grouping tag from an item name. The rule runs on
// the upper-cased name: a literal "ZG" prefix wins, then a leading A-Z letter
// becomes its own single-letter category, everything else is CategoryOther.
// The tag is derived on every read and never persisted.
func Classify(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if strings.HasPrefix(upper, "ZG") {
		return "ZG"
	}
	r, _ := utf8.DecodeRuneInString(upper)
	if r >= 'A' && r <= 'Z' {
		return string(r)
	}
	return CategoryOther
}
