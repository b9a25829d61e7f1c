package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// TitleName trims s and title-cases every word ("travel  food" -> "Travel Food").
func TitleName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return cases.Title(language.English).String(s)
}
