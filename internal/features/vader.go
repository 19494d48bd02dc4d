package features

import "github.com/jonreiter/govader"

// VADER scores text with the VADER lexicon and rule set.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER loads the VADER lexicon. The analyzer is read-only after
// construction and safe to share between goroutines.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Score(text string) Sentiment {
	s := v.analyzer.PolarityScores(text)
	return Sentiment{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}
