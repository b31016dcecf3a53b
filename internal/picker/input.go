package picker

import (
	"regexp"
	"unicode/utf8"
)

// CleanValue removes every match of disallowed from value and returns the
// cleaned text with the cursor moved to the same place in it. cursor counts
// runes.
func CleanValue(value string, cursor int, disallowed *regexp.Regexp) (string, int) {
	r := []rune(value)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(r) {
		cursor = len(r)
	}

	before := disallowed.ReplaceAllString(string(r[:cursor]), "")
	after := disallowed.ReplaceAllString(string(r[cursor:]), "")
	return before + after, utf8.RuneCountInString(before)
}
