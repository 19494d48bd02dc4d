package main

import (
	"encoding/json"
	"errors"
	"testing"

	"lyricfeat/internal/services"
)

func TestCacheStats(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env.cfg.Paths.CacheFile)

	out, _, err := runCLI(t, env.configPath, "cache", "stats", "--json")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	var summary cacheSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Records != 4 || summary.Found != 2 || summary.NotFound != 2 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.UniqueURIs != 2 || summary.Decode.Lines != 5 || summary.Decode.MissingKey != 1 {
		t.Fatalf("unexpected decode stats: %+v", summary)
	}

	out, _, err = runCLI(t, env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats table: %v", err)
	}
	requireContains(t, out, "With lyrics")
}

func TestCacheShow(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env.cfg.Paths.CacheFile)

	out, _, err := runCLI(t, env.configPath, "cache", "show", "spotify:track:1")
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "spotify:track:1__adele__hello")
	requireContains(t, out, "Hello from the other side")

	_, _, err = runCLI(t, env.configPath, "cache", "show", "spotify:track:404")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVocabCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env.cfg.Paths.CacheFile)

	out, _, err := runCLI(t, env.configPath, "vocab", "--json", "--top", "3")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	var report struct {
		Documents int `json:"documents"`
		Terms     []struct {
			Stem  string `json:"stem"`
			Count int    `json:"count"`
		} `json:"terms"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Documents != 2 || len(report.Terms) != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	for _, term := range report.Terms {
		if term.Stem == "the" || term.Stem == "my" {
			t.Fatalf("stopword %q should be excluded by default", term.Stem)
		}
	}

	out, _, err = runCLI(t, env.configPath, "vocab", "--keep-stopwords", "--top", "0")
	if err != nil {
		t.Fatalf("vocab table: %v", err)
	}
	requireContains(t, out, "the")
}
