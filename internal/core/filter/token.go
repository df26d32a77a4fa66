package filter

import (
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r counts as a word character for boundary checks.
// Letters, numbers and connector punctuation (underscore) are word chars;
// hyphen and the rest of punctuation are not
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Pc)
}

// expandToToken widens [start,end) to the containing token delimited by non-word chars
func expandToToken(s string, start, end int) (int, int) {
	ls, rs := start, end
	for ls > 0 {
		r, sz := utf8.DecodeLastRuneInString(s[:ls])
		if !isWord(r) {
			break
		}
		ls -= sz
	}
	for rs < len(s) {
		r, sz := utf8.DecodeRuneInString(s[rs:])
		if !isWord(r) {
			break
		}
		rs += sz
	}
	return ls, rs
}
