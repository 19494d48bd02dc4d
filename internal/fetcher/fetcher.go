package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lyricfeat/internal/genius"
	"lyricfeat/internal/logging"
	"lyricfeat/internal/lyricscache"
	"lyricfeat/internal/metrics"
	"lyricfeat/internal/services"
)

// SongSource resolves a track to a song with lyrics. A nil song without
// error means no match.
type SongSource interface {
	SearchSong(ctx context.Context, artist, title string) (*genius.Song, error)
}

// Options configures a fetch run.
type Options struct {
	CachePath string
	// Limit caps new fetches per run; 0 disables the cap.
	Limit int
	// LogEvery emits a progress line after every N new fetches; 0 disables.
	LogEvery int
	Logger   *slog.Logger
	Metrics  *metrics.Pipeline
	// Now is used for retrieved_at_unix; defaults to time.Now.
	Now func() time.Time
}

// Summary reports what a run did.
type Summary struct {
	Seen           int           `json:"seen"`
	Fetched        int           `json:"fetched"`
	Found          int           `json:"found"`
	Errors         int           `json:"errors"`
	SkippedCached  int           `json:"skipped_cached"`
	SkippedInvalid int           `json:"skipped_invalid"`
	CacheSize      int           `json:"cache_size"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Run fetches lyrics for tracks not yet in the cache and appends one record
// per attempt. Lookup failures are recorded as not found; only cache and
// context errors stop the run.
func Run(ctx context.Context, source SongSource, tracks []Track, opts Options) (Summary, error) {
	if source == nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "fetch", "run", "song source is required", nil)
	}
	if strings.TrimSpace(opts.CachePath) == "" {
		return Summary{}, services.Wrap(services.ErrConfiguration, "fetch", "run", "cache path is required", nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := logging.NewComponentLogger(opts.Logger, "fetcher")
	start := time.Now()

	cache, err := lyricscache.LoadForFetch(ctx, opts.CachePath)
	if err != nil {
		return Summary{}, fmt.Errorf("load cache: %w", err)
	}
	opts.Metrics.ObserveCache(cache.Stats())
	logger.Info("fetch starting",
		logging.Int("tracks", len(tracks)),
		logging.Int("cached", cache.Len()),
		logging.Int("limit", opts.Limit),
		logging.String("cache_path", opts.CachePath))

	var summary Summary
	sampler := logging.NewProgressSampler(opts.LogEvery)
	finish := func() Summary {
		summary.CacheSize = cache.Len()
		summary.Elapsed = time.Since(start)
		return summary
	}

	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return finish(), err
		}
		summary.Seen++
		if opts.Limit > 0 && summary.Fetched >= opts.Limit {
			break
		}

		uri := track.URI
		artist := strings.TrimSpace(track.Artist)
		title := strings.TrimSpace(track.Title)
		if strings.TrimSpace(uri) == "" || artist == "" || title == "" {
			summary.SkippedInvalid++
			opts.Metrics.ObserveSkip("missing_fields")
			continue
		}
		key := lyricscache.CanonicalKey(uri, artist, title)
		if cache.Has(key) {
			summary.SkippedCached++
			opts.Metrics.ObserveSkip("cached")
			continue
		}

		rec, lookupErr := fetchOne(ctx, source, uri, artist, title, now, opts.Metrics)
		if lookupErr != nil {
			if ctx.Err() != nil {
				return finish(), ctx.Err()
			}
			summary.Errors++
			logging.WarnWithContext(logger, "lyrics lookup failed", "genius_lookup_failed",
				logging.String(logging.FieldTrackURI, uri),
				logging.String("artist", artist),
				logging.String("title", title),
				logging.Error(lookupErr),
				logging.String(logging.FieldErrorHint, "check the Genius token and network, then rerun to retry"),
				logging.String(logging.FieldImpact, "track recorded as not found"))
		}
		if err := lyricscache.Append(ctx, opts.CachePath, rec); err != nil {
			logging.ErrorWithContext(logger, "cache append failed", "cache_append_failed",
				logging.String(logging.FieldTrackURI, uri),
				logging.String("cache_path", opts.CachePath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the cache file is writable; earlier records are kept"))
			return finish(), fmt.Errorf("append cache record: %w", err)
		}
		cache.Put(rec)
		summary.Fetched++
		if rec.Found {
			summary.Found++
		}

		if sampler.ShouldLog(summary.Fetched) {
			logger.Info("fetch progress",
				logging.Int("new", summary.Fetched),
				logging.Int("seen", summary.Seen),
				logging.Int("cache", cache.Len()),
				logging.Duration("elapsed", time.Since(start).Round(time.Second)))
		}
	}

	finish()
	logger.Info("fetch complete",
		logging.Int("new", summary.Fetched),
		logging.Int("found", summary.Found),
		logging.Int("errors", summary.Errors),
		logging.Int("seen", summary.Seen),
		logging.Int("cache", summary.CacheSize),
		logging.Duration("elapsed", summary.Elapsed.Round(time.Millisecond)))
	return summary, nil
}

// fetchOne always returns a record; the error is the lookup failure, if any.
func fetchOne(ctx context.Context, source SongSource, uri, artist, title string, now func() time.Time, m *metrics.Pipeline) (lyricscache.Record, error) {
	trackURI := uri
	rec := lyricscache.Record{
		CanonicalKey: lyricscache.CanonicalKey(uri, artist, title),
		TrackURI:     &trackURI,
		Artist:       artist,
		Track:        title,
	}

	started := time.Now()
	song, err := source.SearchSong(ctx, artist, title)
	found := err == nil && song != nil && song.Lyrics != ""
	m.ObserveFetch(found, err, time.Since(started))
	rec.RetrievedAtUnix = now().Unix()
	if !found {
		return rec, err
	}

	id := song.ID
	fullTitle := song.FullTitle
	lyrics := song.Lyrics
	rec.Found = true
	rec.GeniusSongID = &id
	rec.GeniusFullTitle = &fullTitle
	rec.Lyrics = &lyrics
	return rec, nil
}
