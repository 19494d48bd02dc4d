package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"lyricfeat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory. Paths
// point at files that do not exist yet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Genius.AccessToken = "test"
	cfgVal.Paths.CacheFile = filepath.Join(base, "cache", "lyrics_cache.jsonl")
	cfgVal.Paths.OutputFile = filepath.Join(base, "out", "lyrics_features.db")
	cfgVal.Paths.LogDir = ""
	cfgVal.Features.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithAccessToken sets the Genius token on the test config.
func WithAccessToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Genius.AccessToken = token
	}
}

// WithGeniusBaseURL points the Genius client at a test server.
func WithGeniusBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Genius.BaseURL = url
		b.cfg.Genius.SleepSeconds = 0
	}
}

// WithOutputName replaces the output file name, keeping it in the temp tree.
// The extension selects the output format.
func WithOutputName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputFile = filepath.Join(b.baseDir, "out", name)
	}
}

// WithLogDir enables file logging under the temp tree.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		dir := filepath.Join(b.baseDir, "logs")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir log dir: %v", err)
		}
		b.cfg.Paths.LogDir = dir
	}
}
