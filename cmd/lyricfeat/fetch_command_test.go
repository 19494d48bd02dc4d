package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"lyricfeat/internal/lyricscache"
	"lyricfeat/internal/services"
	"lyricfeat/internal/testsupport"
)

func newGeniusStub(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") != "Hello Adele" {
			fmt.Fprint(w, `{"response":{"hits":[]}}`)
			return
		}
		fmt.Fprintf(w, `{"response":{"hits":[{"type":"song","result":{"id":5,"title":"Hello","full_title":"Hello by Adele","url":"%s/adele-hello-lyrics","lyrics_state":"complete","primary_artist":{"name":"Adele"}}}]}}`, srv.URL)
	})
	mux.HandleFunc("/adele-hello-lyrics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div data-lyrics-container="true">[Verse 1]<br/>Hello, it's me</div></body></html>`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeTracks(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "tracks.csv")
	body := "spotify_track_uri,artist_name_primary,track_name\n" +
		"spotify:track:1,Adele,Hello\n" +
		"spotify:track:2,Unknown,Nothing Here\n" +
		",Missing,Uri\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tracks: %v", err)
	}
	return path
}

func TestFetchCommand(t *testing.T) {
	srv := newGeniusStub(t)
	env := setupCLITestEnv(t, testsupport.WithGeniusBaseURL(srv.URL), testsupport.WithLogDir())
	tracks := writeTracks(t, env.baseDir)

	out, _, err := runCLI(t, env.configPath, "fetch", "--tracks", tracks, "--json")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var summary struct {
		Seen           int `json:"seen"`
		Fetched        int `json:"fetched"`
		Found          int `json:"found"`
		SkippedInvalid int `json:"skipped_invalid"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Seen != 3 || summary.Fetched != 2 || summary.Found != 1 || summary.SkippedInvalid != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	out, _, err = runCLI(t, env.configPath, "cache", "show", "spotify:track:1")
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "Hello by Adele")
	requireContains(t, out, "Hello, it's me")

	out, _, err = runCLI(t, env.configPath, "fetch", "--tracks", tracks)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	requireContains(t, out, "Fetched 0 new")
	requireContains(t, out, "Skipped 2 cached")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.LogDir, "lyricfeat.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}

	index, err := lyricscache.Read(testContext(t), env.cfg.Paths.CacheFile)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	if index.Stats().Lines != 2 {
		t.Fatalf("expected 2 cache lines after resumed run, got %d", index.Stats().Lines)
	}
}

func TestFetchRequiresToken(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAccessToken(""))
	tracks := writeTracks(t, env.baseDir)

	_, _, err := runCLI(t, env.configPath, "fetch", "--tracks", tracks)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if code := services.ExitCode(err); code != services.ExitUsage {
		t.Fatalf("expected exit code %d, got %d", services.ExitUsage, code)
	}
}
