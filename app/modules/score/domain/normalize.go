package scoredomain

import (
	"strings"
	"unicode/utf8"
)

// diacriticFold maps the accented Latin letters seen in tour rosters to their
// base letters. Characters outside the table pass through unchanged.
var diacriticFold = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ý", "y", "ÿ", "y",
	"ñ", "n",
	"ç", "c",
	"ß", "ss",
)

// suffixTokens are generational suffixes dropped when they form a whole token.
var suffixTokens = map[string]struct{}{
	"jr": {}, "jr.": {},
	"sr": {}, "sr.": {},
	"ii": {}, "iii": {}, "iv": {},
	"r": {}, "r.": {},
}

// Normalize canonicalizes a free-text golfer name: lower case, folded
// diacritics, suffix tokens removed, single spaces. Normalize is idempotent.
func Normalize(raw string) string {
	folded := diacriticFold.Replace(strings.ToLower(raw))

	tokens := strings.Fields(folded)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, suffix := suffixTokens[tok]; suffix {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// significantTokens splits a normalized name and keeps tokens longer than one
// character, so lone initials never drive a match.
func significantTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}
