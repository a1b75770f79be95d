// Package cleaner normalizes business names and matches or strips ranked
// terms against them. Every function is pure.
package cleaner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var commaReplacer = strings.NewReplacer(",", " ", "，", " ")

// Sanitize returns the canonical matching form of a raw name:
//  1. ASCII and full-width commas become spaces
//  2. Whitespace runs collapse to one space and the ends are trimmed
//  3. The result is lowercased
//  4. Trailing non-word characters are removed, except periods
//
// Sanitize is idempotent.
func Sanitize(name string) string {
	name = commaReplacer.Replace(name)
	name = collapse(name)
	name = strings.ToLower(name)
	return stripTail(name)
}

// stripTail drops the maximal suffix of characters that are neither word
// characters nor periods.
func stripTail(name string) string {
	end := len(name)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(name[:end])
		if r == '.' || isWord(r) {
			break
		}
		end -= size
	}
	return name[:end]
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Fold applies NFKC normalization and maps full-width forms to their ASCII
// equivalents. It is an optional step before Sanitize.
func Fold(name string) string {
	if name == "" {
		return ""
	}
	return width.Fold.String(norm.NFKC.String(name))
}
