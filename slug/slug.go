// Package slug turns free text into filesystem and URL safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonWord = regexp.MustCompile(`[^\w\s-]`)
	dashRun = regexp.MustCompile(`[-\s]+`)
)

// Make lowercases and trims text, drops everything that is not a word
// character, whitespace or hyphen, then collapses whitespace/hyphen runs into
// a single hyphen. Make(Make(s)) == Make(s).
func Make(text string) string {
	s := strings.Map(spaceToASCII, strings.ToLower(strings.TrimSpace(text)))
	s = nonWord.ReplaceAllStringFunc(s, stripNonLetter)
	return dashRun.ReplaceAllString(s, "-")
}

// RE2's \s misses \v and every non-ASCII space (NBSP, ideographic space);
// fold them so they separate words instead of being stripped.
func spaceToASCII(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

// RE2's \w is ASCII only; keep unicode letters and digits like the blog's
// older python tooling did.
func stripNonLetter(m string) string {
	var b strings.Builder
	for _, r := range m {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
