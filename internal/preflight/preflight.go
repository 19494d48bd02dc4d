package preflight

import (
	"context"
	"path/filepath"

	"lyricfeat/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
	// Optional results are reported but do not fail the run.
	Optional bool `json:"optional,omitempty"`
}

// Options selects optional checks.
type Options struct {
	// Online adds a live Genius search with the configured token.
	Online bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.Paths.CacheFile)),
		CheckCache(ctx, cfg.Paths.CacheFile),
		CheckDirectoryAccess("Output directory", filepath.Dir(cfg.Paths.OutputFile)),
		CheckOutputFormat(cfg.Paths.OutputFile),
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckToken(cfg.Genius.AccessToken))
	if opts.Online && cfg.Genius.AccessToken != "" {
		results = append(results, CheckGenius(ctx, cfg.Genius))
	}
	return results
}

// Failed reports whether any required result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
