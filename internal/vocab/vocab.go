package vocab

import (
	"regexp"
	"sort"

	"github.com/kljensen/snowball"

	"lyricfeat/internal/lyricscache"
	"lyricfeat/internal/lyricsclean"
	"lyricfeat/internal/textutil"
)

var letterRun = regexp.MustCompile(`\p{L}+`)

// Options controls an analysis pass.
type Options struct {
	// TopN bounds the returned terms; zero or less returns all of them.
	TopN             int
	ExcludeStopwords bool
}

// Term is one stem with its corpus statistics.
type Term struct {
	Stem string `json:"stem"`
	// Example is the most frequent surface form that produced the stem.
	Example string  `json:"example"`
	Count   int     `json:"count"`
	Tracks  int     `json:"tracks"`
	IDF     float64 `json:"idf"`
}

// Report summarizes the vocabulary of the found lyrics in a cache.
type Report struct {
	Documents   int    `json:"documents"`
	Tokens      int    `json:"tokens"`
	UniqueStems int    `json:"unique_stems"`
	Terms       []Term `json:"terms"`
}

// Analyze counts stems over the cleaned lyrics of found records.
func Analyze(records []lyricscache.Record, opts Options) Report {
	corpus := textutil.NewCorpus()
	counts := make(map[string]int)
	surfaces := make(map[string]map[string]int)
	var report Report

	for _, rec := range records {
		cleaned := lyricsclean.CleanPtr(rec.FoundLyrics())
		if cleaned == nil {
			continue
		}
		stems := stemTokens(*cleaned, opts.ExcludeStopwords, func(stem, surface string) {
			counts[stem]++
			if surfaces[stem] == nil {
				surfaces[stem] = make(map[string]int)
			}
			surfaces[stem][surface]++
		})
		report.Documents++
		report.Tokens += len(stems)
		corpus.AddTerms(stems)
	}

	idf := corpus.IDF()
	terms := make([]Term, 0, len(counts))
	for stem, count := range counts {
		terms = append(terms, Term{
			Stem:    stem,
			Example: mostFrequent(surfaces[stem]),
			Count:   count,
			Tracks:  corpus.DocFreq(stem),
			IDF:     idf[stem],
		})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Stem < terms[j].Stem
	})
	report.UniqueStems = len(terms)
	if opts.TopN > 0 && len(terms) > opts.TopN {
		terms = terms[:opts.TopN]
	}
	report.Terms = terms
	return report
}

func stemTokens(text string, dropStopwords bool, observe func(stem, surface string)) []string {
	tokens := letterRun.FindAllString(textutil.Lower(text), -1)
	stems := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if dropStopwords && IsStopword(tok) {
			continue
		}
		stem := Stem(tok)
		if stem == "" {
			continue
		}
		observe(stem, tok)
		stems = append(stems, stem)
	}
	return stems
}

// Stem reduces an ASCII word with the English Snowball stemmer. Words with
// other letters are returned unchanged.
func Stem(word string) string {
	if !isASCII(word) {
		return word
	}
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func mostFrequent(forms map[string]int) string {
	best, bestCount := "", 0
	for form, n := range forms {
		if n > bestCount || (n == bestCount && form < best) {
			best, bestCount = form, n
		}
	}
	return best
}
