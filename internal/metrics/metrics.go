package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lyricfeat/internal/featuretable"
	"lyricfeat/internal/lyricscache"
)

const namespace = "lyricfeat"

// Pipeline holds the counters for one process run on a private registry.
// A nil *Pipeline is valid and records nothing.
type Pipeline struct {
	registry *prometheus.Registry

	cacheLines      prometheus.Counter
	cacheMissingKey prometheus.Counter
	rowsBuilt       prometheus.Counter
	rowsMissingURI  prometheus.Counter
	rowsDuplicate   prometheus.Counter
	lyricsFound     prometheus.Counter
	fetchAttempts   prometheus.Counter
	fetchHits       prometheus.Counter
	fetchErrors     prometheus.Counter
	fetchSkipped    *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	lastSuccess     prometheus.Gauge
}

// New registers a fresh set of pipeline collectors.
func New() *Pipeline {
	counter := func(subsystem, name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	p := &Pipeline{
		registry:        prometheus.NewRegistry(),
		cacheLines:      counter("cache", "lines_read_total", "Cache lines read, including blank and keyless lines."),
		cacheMissingKey: counter("cache", "records_missing_key_total", "Cache records skipped for lacking a canonical key."),
		rowsBuilt:       counter("features", "rows_built_total", "Feature rows produced."),
		rowsMissingURI:  counter("features", "rows_missing_uri_total", "Cache records dropped for lacking a track URI."),
		rowsDuplicate:   counter("features", "duplicate_rows_total", "Rows collapsed because a later record shared the track URI."),
		lyricsFound:     counter("features", "lyrics_found_total", "Feature rows with usable lyrics."),
		fetchAttempts:   counter("fetch", "attempts_total", "Genius lookups attempted."),
		fetchHits:       counter("fetch", "hits_total", "Genius lookups that returned lyrics."),
		fetchErrors:     counter("fetch", "errors_total", "Genius lookups that failed with an error."),
		fetchSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "skipped_total",
			Help:      "Input tracks not fetched, by reason.",
		}, []string{"reason"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent per Genius lookup, including retries.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last command that completed without error.",
		}),
	}
	p.registry.MustRegister(
		p.cacheLines, p.cacheMissingKey,
		p.rowsBuilt, p.rowsMissingURI, p.rowsDuplicate, p.lyricsFound,
		p.fetchAttempts, p.fetchHits, p.fetchErrors, p.fetchSkipped, p.fetchDuration,
		p.lastSuccess,
	)
	return p
}

// Registry exposes the underlying registry for gathering.
func (p *Pipeline) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// ObserveCache records the outcome of a cache read.
func (p *Pipeline) ObserveCache(stats lyricscache.Stats) {
	if p == nil {
		return
	}
	p.cacheLines.Add(float64(stats.Lines))
	p.cacheMissingKey.Add(float64(stats.MissingKey))
}

// ObserveBuild records the outcome of a feature table build.
func (p *Pipeline) ObserveBuild(stats featuretable.Stats) {
	if p == nil {
		return
	}
	p.rowsBuilt.Add(float64(stats.Rows))
	p.rowsMissingURI.Add(float64(stats.MissingURI))
	p.rowsDuplicate.Add(float64(stats.Duplicates))
	p.lyricsFound.Add(float64(stats.LyricsFound))
}

// ObserveFetch records one Genius lookup.
func (p *Pipeline) ObserveFetch(found bool, err error, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.fetchAttempts.Inc()
	p.fetchDuration.Observe(elapsed.Seconds())
	switch {
	case err != nil:
		p.fetchErrors.Inc()
	case found:
		p.fetchHits.Inc()
	}
}

// ObserveSkip records a track that was not fetched.
func (p *Pipeline) ObserveSkip(reason string) {
	if p == nil {
		return
	}
	p.fetchSkipped.WithLabelValues(reason).Inc()
}

// MarkSuccess stamps the last-success gauge with the current time.
func (p *Pipeline) MarkSuccess() {
	if p == nil {
		return
	}
	p.lastSuccess.SetToCurrentTime()
}

// WriteTextfile writes the registry in the text exposition format for the
// node_exporter textfile collector. An empty path is a no-op.
func (p *Pipeline) WriteTextfile(path string) error {
	if p == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
