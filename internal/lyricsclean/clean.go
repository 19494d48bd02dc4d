package lyricsclean

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	sectionMarker  = regexp.MustCompile(`\[.*?\]`)
	metadataLine   = regexp.MustCompile(`(?im)(Produced by|Written by|Release Date).*?$`)
	embedArtifact  = regexp.MustCompile(`(?i)embed`)
	recommendation = regexp.MustCompile(`(?is)You might also like.*$`)
)

// Clean strips scraped page furniture from lyric text and normalizes
// whitespace. The boolean is false when nothing remains; an empty input is
// treated as absent.
func Clean(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	t := sectionMarker.ReplaceAllString(text, " ")
	t = metadataLine.ReplaceAllString(t, " ")
	t = removeEmbed(t)
	t = recommendation.ReplaceAllString(t, " ")

	// Must run last so removals above leave no doubled spaces.
	t = strings.Join(strings.Fields(t), " ")
	if t == "" {
		return "", false
	}
	return t, true
}

// removeEmbed blanks whole-word "Embed". Word characters are letters, digits
// and underscore from any script, so "사랑Embed" is left alone.
func removeEmbed(text string) string {
	matches := embedArtifact.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		before, _ := utf8.DecodeLastRuneInString(text[:m[0]])
		after, _ := utf8.DecodeRuneInString(text[m[1]:])
		if (m[0] > 0 && isWordRune(before)) || (m[1] < len(text) && isWordRune(after)) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteByte(' ')
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// CleanPtr is Clean for JSON-nullable values. Nil in, nil out.
func CleanPtr(text *string) *string {
	if text == nil {
		return nil
	}
	cleaned, ok := Clean(*text)
	if !ok {
		return nil
	}
	return &cleaned
}

// StripSectionHeaders removes [Verse]/[Chorus] style markers but keeps line
// structure, for display of scraped lyrics.
func StripSectionHeaders(text string) string {
	lines := strings.Split(sectionMarker.ReplaceAllString(text, ""), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Trim(strings.Join(out, "\n"), "\n")
}
