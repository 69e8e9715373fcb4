package workspace

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pinyinArgs = pinyin.NewArgs()

// Transliterate replaces each Han character with its toneless pinyin
// syllable. Every other character passes through unchanged, so "我爱你"
// becomes "woaini" and "Café我" becomes "Caféwo".
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			if syllables := pinyin.SinglePinyin(r, pinyinArgs); len(syllables) > 0 {
				b.WriteString(syllables[0])
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// foldDiacritics strips combining marks. Transformers are stateful, so a
// fresh chain is built per call.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// matchesQuery reports whether query is a substring of a field, of its
// transliteration, or of the transliteration with diacritics folded.
// Folding only adds matches: "Cafe" finds "Café" and "éwo" still finds
// "Café我". Matching is case-sensitive; an empty query matches all.
func matchesQuery(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(f, query) {
			return true
		}
		translit := Transliterate(f)
		if strings.Contains(translit, query) || strings.Contains(foldDiacritics(translit), query) {
			return true
		}
	}
	return false
}
