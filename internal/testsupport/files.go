package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lyricfeat/internal/lyricscache"
)

// WriteCache writes records as cache lines at path, replacing any existing
// file.
func WriteCache(t testing.TB, path string, records ...lyricscache.Record) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// FoundRecord builds a found cache record for uri with the given lyrics.
func FoundRecord(uri, artist, title, lyrics string, songID int64) lyricscache.Record {
	fullTitle := title + " by " + artist
	return lyricscache.Record{
		CanonicalKey:    lyricscache.CanonicalKey(uri, artist, title),
		TrackURI:        &uri,
		Artist:          artist,
		Track:           title,
		Found:           true,
		GeniusSongID:    &songID,
		GeniusFullTitle: &fullTitle,
		Lyrics:          &lyrics,
		RetrievedAtUnix: 1700000000,
	}
}

// MissRecord builds a not-found cache record for uri.
func MissRecord(uri, artist, title string) lyricscache.Record {
	return lyricscache.Record{
		CanonicalKey:    lyricscache.CanonicalKey(uri, artist, title),
		TrackURI:        &uri,
		Artist:          artist,
		Track:           title,
		RetrievedAtUnix: 1700000000,
	}
}
