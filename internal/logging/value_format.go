package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// maxValueRunes bounds one console field. Lyric excerpts and Genius
// response bodies can run to kilobytes.
const maxValueRunes = 120

// attrString renders v without quoting, for the line header.
func attrString(v slog.Value) string {
	return truncateValue(plainValue(v.Resolve()))
}

// formatValue renders v as the right-hand side of a key=value field.
func formatValue(v slog.Value) string {
	s := truncateValue(plainValue(v.Resolve()))
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func plainValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', 6, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		return anyValue(v.Any())
	default:
		return v.String()
	}
}

// anyValue unwraps the nullable provenance fields carried by cache records.
func anyValue(a any) string {
	switch x := a.(type) {
	case error:
		return x.Error()
	case *string:
		if x == nil {
			return "null"
		}
		return *x
	case *int64:
		if x == nil {
			return "null"
		}
		return strconv.FormatInt(*x, 10)
	default:
		return fmt.Sprint(a)
	}
}

func truncateValue(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if utf8.RuneCountInString(s) <= maxValueRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxValueRunes]) + "..."
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
