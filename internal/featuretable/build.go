package featuretable

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"lyricfeat/internal/features"
	"lyricfeat/internal/lyricscache"
)

// Options configures Build.
type Options struct {
	// Workers bounds extraction parallelism. Zero selects runtime.NumCPU.
	Workers   int
	Extractor *features.Extractor
}

// Stats describes what Build kept and dropped.
type Stats struct {
	Records     int `json:"records"`
	Rows        int `json:"rows"`
	MissingURI  int `json:"missing_uri"`
	Duplicates  int `json:"duplicates"`
	LyricsFound int `json:"lyrics_found"`
}

// Build turns cache records into feature rows. Records without a track URI
// are dropped and, among records sharing a URI, the last one wins. Rows come
// out in the order of the kept records. Only cancellation makes Build fail.
func Build(ctx context.Context, records []lyricscache.Record, opts Options) ([]Row, Stats, error) {
	stats := Stats{Records: len(records)}

	last := make(map[string]int, len(records))
	for i, rec := range records {
		uri := rec.URI()
		if strings.TrimSpace(uri) == "" {
			stats.MissingURI++
			continue
		}
		if _, seen := last[uri]; seen {
			stats.Duplicates++
		}
		last[uri] = i
	}

	kept := make([]int, 0, len(last))
	for i, rec := range records {
		if at, ok := last[rec.URI()]; ok && at == i {
			kept = append(kept, i)
		}
	}

	extractor := opts.Extractor
	if extractor == nil {
		extractor = features.NewExtractor(nil)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(kept) {
		workers = len(kept)
	}

	rows := make([]Row, len(kept))
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for slot := w; slot < len(kept); slot += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec := records[kept[slot]]
				rows[slot] = Row{
					TrackURI:        rec.URI(),
					GeniusSongID:    rec.GeniusSongID,
					GeniusFullTitle: rec.GeniusFullTitle,
					Features:        extractor.Extract(rec.FoundLyrics()),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	stats.Rows = len(rows)
	for _, row := range rows {
		if row.LyricsFound {
			stats.LyricsFound++
		}
	}
	return rows, stats, nil
}
