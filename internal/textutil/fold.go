package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// bracketSuffix matches trailing "(feat. X)", "[Remastered]" style qualifiers.
	bracketSuffix = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]\s*$`)
	// dashSuffix matches trailing " - Remastered 2011" style qualifiers.
	dashSuffix = regexp.MustCompile(`\s+-\s+.*$`)
	featClause = regexp.MustCompile(`(?i)\s+(feat\.?|ft\.?|featuring)\s+.*$`)
)

// Lower applies full Unicode lowercase mapping, including multi-rune
// expansions that strings.ToLower does not perform.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// FoldKey trims surrounding whitespace and lowercases s. It is the
// normalization used for cache key components.
func FoldKey(s string) string {
	return Lower(strings.TrimSpace(s))
}

// StripMarks decomposes s and removes combining marks ("Beyoncé" -> "Beyonce").
func StripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeTitle reduces a song title or artist name to a comparison form:
// marks stripped, lowercased, trailing qualifiers and featured artists removed,
// whitespace collapsed.
func NormalizeTitle(s string) string {
	s = StripMarks(strings.TrimSpace(s))
	for {
		trimmed := bracketSuffix.ReplaceAllString(s, "")
		trimmed = dashSuffix.ReplaceAllString(trimmed, "")
		if trimmed == s || strings.TrimSpace(trimmed) == "" {
			break
		}
		s = trimmed
	}
	s = featClause.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(Lower(s)), " ")
	return s
}
