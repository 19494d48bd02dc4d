package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	CacheFile  string `toml:"cache_file" env:"LYRICFEAT_CACHE_FILE"`
	OutputFile string `toml:"output_file" env:"LYRICFEAT_OUTPUT_FILE"`
	LogDir     string `toml:"log_dir"`
}

// Genius contains configuration for the Genius search API and lyric page scraping.
type Genius struct {
	AccessToken          string  `toml:"access_token" env:"GENIUS_ACCESS_TOKEN"`
	BaseURL              string  `toml:"base_url"`
	UserAgent            string  `toml:"user_agent"`
	TimeoutSeconds       int     `toml:"timeout_seconds"`
	Retries              int     `toml:"retries"`
	SleepSeconds         float64 `toml:"sleep_seconds"`
	RemoveSectionHeaders bool    `toml:"remove_section_headers"`
	SkipNonSongs         bool    `toml:"skip_non_songs"`
	// MatchThreshold is the minimum title similarity (0-1) a search hit needs
	// when no hit matches the requested title exactly.
	MatchThreshold float64 `toml:"match_threshold"`
}

// Fetch controls the resumable lyric fetch loop.
type Fetch struct {
	// Limit caps new fetches per run. Zero means unlimited.
	Limit    int `toml:"limit"`
	LogEvery int `toml:"log_every"`
}

// Features controls feature table materialization.
type Features struct {
	// Workers is the number of extraction goroutines. Zero selects runtime.NumCPU.
	Workers int `toml:"workers"`
}

// Vocab controls the vocabulary report.
type Vocab struct {
	TopN             int  `toml:"top_n"`
	ExcludeStopwords bool `toml:"exclude_stopwords"`
}

// Metrics controls Prometheus textfile output.
type Metrics struct {
	TextfilePath string `toml:"textfile_path" env:"LYRICFEAT_METRICS_TEXTFILE"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level" env:"LYRICFEAT_LOG_LEVEL"`
}

// Config encapsulates all configuration values for lyricfeat.
//
// Configuration sections by subsystem:
//   - Paths: lyric cache, feature output, and log locations
//   - Genius: API credentials and request pacing for lyric fetches
//   - Fetch: per-run limit and progress logging cadence
//   - Features: extraction parallelism
//   - Vocab: vocabulary report size and stopword handling
//   - Metrics: optional Prometheus textfile output
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Genius   Genius   `toml:"genius"`
	Fetch    Fetch    `toml:"fetch"`
	Features Features `toml:"features"`
	Vocab    Vocab    `toml:"vocab"`
	Metrics  Metrics  `toml:"metrics"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lyricfeat/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment variables
// take precedence over file values. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("read environment overrides: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lyricfeat.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the parent directories of the cache and output files
// and the log directory when configured.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.CacheFile), filepath.Dir(c.Paths.OutputFile)}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
