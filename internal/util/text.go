package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeColumn folds a header cell into the form used for synonym lookup.
func NormalizeColumn(input string) string {
	s := strings.TrimPrefix(input, "\ufeff")
	s = strings.ToLower(NormalizeSpaces(s))
	return strings.ReplaceAll(s, "ё", "е")
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// FoldName is the case-insensitive key used for name search.
func FoldName(input string) string {
	return strings.ToLower(input)
}
