package features

import (
	"strings"
	"unicode/utf8"

	"lyricfeat/internal/lyricsclean"
	"lyricfeat/internal/textutil"
)

// Features is the fixed per-track feature record. When LyricsFound is false
// every other field holds its zero value.
type Features struct {
	LyricsFound       bool    `json:"lyrics_found"`
	ContainsCJK       bool    `json:"contains_cjk"`
	CharLength        int     `json:"lyric_len_chars"`
	WordCount         int     `json:"lyric_len_words"`
	UniqueWordRatio   float64 `json:"unique_word_ratio"`
	SentimentCompound float64 `json:"vader_compound"`
	SentimentPositive float64 `json:"vader_pos"`
	SentimentNegative float64 `json:"vader_neg"`
	SentimentNeutral  float64 `json:"vader_neu"`
}

// Sentiment holds the four scores produced by a Scorer.
type Sentiment struct {
	Compound float64
	Positive float64
	Negative float64
	Neutral  float64
}

// Scorer rates the sentiment of cleaned lyric text. Implementations must be
// total over non-empty input and safe for concurrent use.
type Scorer interface {
	Score(text string) Sentiment
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(text string) Sentiment

func (f ScorerFunc) Score(text string) Sentiment { return f(text) }

// Extractor derives Features from raw lyric text.
type Extractor struct {
	scorer Scorer
}

// NewExtractor returns an extractor using scorer. A nil scorer selects VADER.
func NewExtractor(scorer Scorer) *Extractor {
	if scorer == nil {
		scorer = NewVADER()
	}
	return &Extractor{scorer: scorer}
}

// Extract cleans raw and computes its features. Nil or noise-only input
// yields the zero record. Extract never fails.
func (e *Extractor) Extract(raw *string) Features {
	if raw == nil {
		return Features{}
	}
	cleaned, ok := lyricsclean.Clean(*raw)
	if !ok {
		return Features{}
	}

	words := strings.Fields(cleaned)
	scores := e.scorer.Score(cleaned)
	return Features{
		LyricsFound:       true,
		ContainsCJK:       lyricsclean.ContainsCJK(cleaned),
		CharLength:        utf8.RuneCountInString(cleaned),
		WordCount:         len(words),
		UniqueWordRatio:   UniqueWordRatio(words),
		SentimentCompound: scores.Compound,
		SentimentPositive: scores.Positive,
		SentimentNegative: scores.Negative,
		SentimentNeutral:  scores.Neutral,
	}
}

// UniqueWordRatio is the share of distinct lower-cased tokens. Attached
// punctuation is significant: "word," and "word" are distinct.
func UniqueWordRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[textutil.Lower(w)] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(words))
}
