package utils

import (
	"strings"
	"unicode"
)

// CleanToValidUTF8 drops invalid byte sequences.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// SafeText removes control characters and collapses runs of whitespace.
func SafeText(s string) string {
	s = CleanToValidUTF8(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func ContainsString(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
