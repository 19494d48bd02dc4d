package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"lyricfeat/internal/featuretable"
	"lyricfeat/internal/lyricscache"
)

func TestPipelineCounts(t *testing.T) {
	p := New()
	p.ObserveCache(lyricscache.Stats{Lines: 5, Blank: 1, MissingKey: 2})
	p.ObserveBuild(featuretable.Stats{Records: 4, Rows: 2, MissingURI: 1, Duplicates: 1, LyricsFound: 1})
	p.ObserveFetch(true, nil, 100*time.Millisecond)
	p.ObserveFetch(false, nil, 50*time.Millisecond)
	p.ObserveFetch(false, errors.New("boom"), time.Second)
	p.ObserveSkip("cached")
	p.ObserveSkip("cached")
	p.ObserveSkip("missing_fields")

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"cache lines", testutil.ToFloat64(p.cacheLines), 5},
		{"missing key", testutil.ToFloat64(p.cacheMissingKey), 2},
		{"rows built", testutil.ToFloat64(p.rowsBuilt), 2},
		{"missing uri", testutil.ToFloat64(p.rowsMissingURI), 1},
		{"duplicates", testutil.ToFloat64(p.rowsDuplicate), 1},
		{"lyrics found", testutil.ToFloat64(p.lyricsFound), 1},
		{"fetch attempts", testutil.ToFloat64(p.fetchAttempts), 3},
		{"fetch hits", testutil.ToFloat64(p.fetchHits), 1},
		{"fetch errors", testutil.ToFloat64(p.fetchErrors), 1},
		{"skipped cached", testutil.ToFloat64(p.fetchSkipped.WithLabelValues("cached")), 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if n := testutil.CollectAndCount(p.fetchDuration); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}

func TestNilPipelineIsNoop(t *testing.T) {
	var p *Pipeline
	p.ObserveCache(lyricscache.Stats{Lines: 1})
	p.ObserveBuild(featuretable.Stats{Rows: 1})
	p.ObserveFetch(true, nil, time.Second)
	p.ObserveSkip("cached")
	p.MarkSuccess()
	if err := p.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("WriteTextfile on nil pipeline returned error: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	p := New()
	p.ObserveBuild(featuretable.Stats{Rows: 3})
	p.MarkSuccess()

	path := filepath.Join(t.TempDir(), "nested", "lyricfeat.prom")
	if err := p.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "lyricfeat_features_rows_built_total 3") {
		t.Fatalf("missing rows counter in output:\n%s", text)
	}
	if !strings.Contains(text, "lyricfeat_last_success_timestamp_seconds") {
		t.Fatalf("missing success gauge in output:\n%s", text)
	}
}
