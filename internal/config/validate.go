package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are not required
// here because only the fetch path needs them; see ValidateFetch.
func (c *Config) Validate() error {
	if err := c.validateGenius(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateVocab(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateFetch reports whether the configuration can drive lyric fetches.
func (c *Config) ValidateFetch() error {
	if strings.TrimSpace(c.Genius.AccessToken) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/lyricfeat/config.toml"
		}
		return fmt.Errorf("genius.access_token is required for fetching. Set GENIUS_ACCESS_TOKEN env var or edit %s (create with 'lyricfeat config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateGenius() error {
	if c.Genius.TimeoutSeconds <= 0 {
		return errors.New("genius.timeout_seconds must be positive")
	}
	if c.Genius.Retries < 0 {
		return errors.New("genius.retries must be >= 0")
	}
	if c.Genius.SleepSeconds < 0 {
		return errors.New("genius.sleep_seconds must be >= 0")
	}
	if c.Genius.MatchThreshold < 0 || c.Genius.MatchThreshold > 1 {
		return errors.New("genius.match_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.Limit < 0 {
		return errors.New("fetch.limit must be >= 0 (0 disables the limit)")
	}
	return nil
}

func (c *Config) validateVocab() error {
	if c.Vocab.TopN < 0 {
		return errors.New("vocab.top_n must be >= 0 (0 lists all stems)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}
