package lyricscache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestAppendThenRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.jsonl")
	id := int64(42)

	first := Record{
		CanonicalKey:    CanonicalKey("spotify:track:1", "Artist", "Song"),
		TrackURI:        strPtr("spotify:track:1"),
		Artist:          "Artist",
		Track:           "Song",
		Found:           false,
		RetrievedAtUnix: 100,
	}
	second := first
	second.Found = true
	second.GeniusSongID = &id
	second.GeniusFullTitle = strPtr("Song by Artist")
	second.Lyrics = strPtr("<b>love</b> & \"quotes\"\n")
	second.RetrievedAtUnix = 200

	for _, rec := range []Record{first, second} {
		if err := Append(ctx, path, rec); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if strings.Contains(lines[0], `"lyrics"`) {
		t.Fatalf("expected lyrics omitted for not-found record: %s", lines[0])
	}
	if !strings.Contains(lines[1], "<b>love</b> &") {
		t.Fatalf("expected unescaped html in line: %s", lines[1])
	}

	ix, err := Read(ctx, path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	got, ok := ix.Get(first.CanonicalKey)
	if !ok {
		t.Fatal("expected record")
	}
	if !got.Found || *got.Lyrics != *second.Lyrics || got.RetrievedAtUnix != 200 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestAppendRejectsEmptyKey(t *testing.T) {
	if err := Append(context.Background(), filepath.Join(t.TempDir(), "c.jsonl"), Record{}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestConcurrentAppendsStayLineAtomic(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.jsonl")
	lyrics := strings.Repeat("la ", 4096)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := Record{
				CanonicalKey: fmt.Sprintf("key-%d", i),
				Found:        true,
				Lyrics:       strPtr(lyrics),
			}
			if err := Append(ctx, path, rec); err != nil {
				t.Errorf("Append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	ix, err := Read(ctx, path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if ix.Len() != 16 {
		t.Fatalf("Len = %d, want 16", ix.Len())
	}
}

func TestAppendHonorsContextWhileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.jsonl")
	holder := flock.New(LockPath(path))
	if err := holder.Lock(); err != nil {
		t.Fatalf("hold lock: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	err := Append(ctx, path, Record{CanonicalKey: "k"})
	if err == nil {
		t.Fatal("expected lock acquisition to fail while held")
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		uri, artist, title string
		want               string
	}{
		{" spotify:track:1 ", " Daft Punk ", "Get Lucky ", "spotify:track:1__daft punk__get lucky"},
		{"u", "BEYONCÉ", "HALO", "u__beyoncé__halo"},
		{"", "", "", "____"},
	}
	for _, tt := range tests {
		if got := CanonicalKey(tt.uri, tt.artist, tt.title); got != tt.want {
			t.Errorf("CanonicalKey(%q, %q, %q) = %q, want %q", tt.uri, tt.artist, tt.title, got, tt.want)
		}
	}
}
