package features

import (
	"math"
	"sync/atomic"
	"testing"
)

func stubScorer(calls *int32) Scorer {
	return ScorerFunc(func(text string) Sentiment {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		return Sentiment{Compound: 0.5, Positive: 0.3, Negative: 0.1, Neutral: 0.6}
	})
}

func ptr(s string) *string { return &s }

func TestExtractAbsentYieldsZeroRecord(t *testing.T) {
	var calls int32
	e := NewExtractor(stubScorer(&calls))
	for _, raw := range []*string{nil, ptr(""), ptr(" "), ptr("[Chorus]\nEmbed")} {
		if got := e.Extract(raw); got != (Features{}) {
			t.Fatalf("Extract(%v) = %+v, want zero record", raw, got)
		}
	}
	if calls != 0 {
		t.Fatalf("scorer should not run for absent lyrics, ran %d times", calls)
	}
}

func TestExtractComputesFields(t *testing.T) {
	e := NewExtractor(stubScorer(nil))
	got := e.Extract(ptr("[Verse]\na A b\nProduced by Z"))

	want := Features{
		LyricsFound:       true,
		ContainsCJK:       false,
		CharLength:        5,
		WordCount:         3,
		SentimentCompound: 0.5,
		SentimentPositive: 0.3,
		SentimentNegative: 0.1,
		SentimentNeutral:  0.6,
	}
	if math.Abs(got.UniqueWordRatio-2.0/3.0) > 1e-12 {
		t.Fatalf("UniqueWordRatio = %v, want 2/3", got.UniqueWordRatio)
	}
	got.UniqueWordRatio = 0
	if got != want {
		t.Fatalf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtractCountsRunesAndCJK(t *testing.T) {
	e := NewExtractor(stubScorer(nil))
	got := e.Extract(ptr("사랑 해요"))
	if !got.LyricsFound || !got.ContainsCJK {
		t.Fatalf("expected found CJK lyrics, got %+v", got)
	}
	if got.CharLength != 5 {
		t.Fatalf("CharLength = %d, want 5 code points", got.CharLength)
	}
	if got.WordCount != 2 || got.UniqueWordRatio != 1 {
		t.Fatalf("unexpected word stats: %+v", got)
	}
}

func TestUniqueWordRatioKeepsPunctuation(t *testing.T) {
	tests := []struct {
		words []string
		want  float64
	}{
		{nil, 0},
		{[]string{"a", "a", "b"}, 2.0 / 3.0},
		{[]string{"Word", "word,", "WORD"}, 2.0 / 3.0},
		{[]string{"x"}, 1},
	}
	for _, tt := range tests {
		if got := UniqueWordRatio(tt.words); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("UniqueWordRatio(%v) = %v, want %v", tt.words, got, tt.want)
		}
	}
}

func TestVADERScoresPolarity(t *testing.T) {
	e := NewExtractor(nil)
	happy := e.Extract(ptr("I love this wonderful happy day"))
	sad := e.Extract(ptr("I hate this terrible awful day"))

	if happy.SentimentCompound <= 0 {
		t.Fatalf("expected positive compound, got %v", happy.SentimentCompound)
	}
	if sad.SentimentCompound >= 0 {
		t.Fatalf("expected negative compound, got %v", sad.SentimentCompound)
	}
	for _, f := range []Features{happy, sad} {
		if f.SentimentCompound < -1 || f.SentimentCompound > 1 {
			t.Fatalf("compound out of range: %v", f.SentimentCompound)
		}
		sum := f.SentimentPositive + f.SentimentNegative + f.SentimentNeutral
		if math.Abs(sum-1) > 0.01 {
			t.Fatalf("expected pos+neg+neu near 1, got %v", sum)
		}
	}
}
