// Package textclean normalizes raw caption text.
package textclean

import (
	"strings"
	"unicode"
)

// removed in addition to everything in category So
var glyphs = map[rune]bool{
	'♪': true, '♫': true, '♬': true, '♩': true,
	'♭': true, '♮': true, '♯': true,
	'\u200b': true, '\u200c': true, '\u200d': true, '\u2060': true, '\ufeff': true, // zero width
}

// Clean strips musical and decorative glyphs and collapses whitespace
func Clean(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if glyphs[r] || unicode.Is(unicode.So, r) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(stripped), " ")
}
