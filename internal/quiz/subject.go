package quiz

import (
	"strings"
	"unicode"
)

// SubjectName turns a URL slug into a display name:
// "pakistan-affairs" becomes "Pakistan Affairs".
func SubjectName(slug string) string {
	runes := []rune(strings.ReplaceAll(slug, "-", " "))

	prevWord := false
	for i, r := range runes {
		word := isWordRune(r)
		if word && !prevWord {
			runes[i] = unicode.ToUpper(r)
		}
		prevWord = word
	}
	return string(runes)
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
