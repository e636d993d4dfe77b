package utils

import (
	"strings"
	"unicode"
)

// NormalizeItem lowercases and trims a furniture label
func NormalizeItem(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}

// MatchesItem reports whether two furniture labels refer to the same thing.
// After normalization one must contain the other, so "dining chairs" satisfies "chair".
// A blank label is contained in every label and so matches anything.
func MatchesItem(a, b string) bool {
	aNorm := NormalizeItem(a)
	bNorm := NormalizeItem(b)
	return strings.Contains(aNorm, bNorm) || strings.Contains(bNorm, aNorm)
}

// MatchesAnyItem reports whether item matches at least one of candidates
func MatchesAnyItem(item string, candidates []string) bool {
	for _, c := range candidates {
		if MatchesItem(item, c) {
			return true
		}
	}
	return false
}

// ContainsAnyKeyword reports whether the normalized text contains any keyword.
// Unlike MatchesItem this is one-directional: the keyword must occur inside the text.
func ContainsAnyKeyword(text string, keywords []string) bool {
	textNorm := NormalizeItem(text)
	if textNorm == "" {
		return false
	}
	for _, kw := range keywords {
		kwNorm := NormalizeItem(kw)
		if kwNorm != "" && strings.Contains(textNorm, kwNorm) {
			return true
		}
	}
	return false
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A word starts after any non-letter, so "tv-stand" becomes "Tv-Stand".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// HumanizeKey turns a snake_case key like "living_room" into "Living Room"
func HumanizeKey(key string) string {
	return TitleCase(strings.ReplaceAll(key, "_", " "))
}
