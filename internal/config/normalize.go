package config

import (
	"fmt"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGenius()
	c.normalizeFetch()
	c.normalizeFeatures()
	c.normalizeVocab()
	if err := c.normalizeMetrics(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheFile) == "" {
		c.Paths.CacheFile = defaultCacheFile
	}
	if c.Paths.CacheFile, err = expandPath(strings.TrimSpace(c.Paths.CacheFile)); err != nil {
		return fmt.Errorf("paths.cache_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	if c.Paths.OutputFile, err = expandPath(strings.TrimSpace(c.Paths.OutputFile)); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGenius() {
	c.Genius.AccessToken = strings.TrimSpace(c.Genius.AccessToken)
	c.Genius.BaseURL = strings.TrimRight(strings.TrimSpace(c.Genius.BaseURL), "/")
	if c.Genius.BaseURL == "" {
		c.Genius.BaseURL = defaultGeniusBaseURL
	}
	c.Genius.UserAgent = strings.TrimSpace(c.Genius.UserAgent)
	if c.Genius.UserAgent == "" {
		c.Genius.UserAgent = defaultGeniusUserAgent
	}
	if c.Genius.TimeoutSeconds == 0 {
		c.Genius.TimeoutSeconds = defaultGeniusTimeoutSeconds
	}
}

func (c *Config) normalizeFetch() {
	if c.Fetch.LogEvery < 0 {
		c.Fetch.LogEvery = 0
	}
}

func (c *Config) normalizeFeatures() {
	if c.Features.Workers <= 0 {
		c.Features.Workers = runtime.NumCPU()
	}
}

func (c *Config) normalizeVocab() {
	if c.Vocab.TopN == 0 {
		c.Vocab.TopN = defaultVocabTopN
	}
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.TextfilePath, err = expandPath(strings.TrimSpace(c.Metrics.TextfilePath)); err != nil {
		return fmt.Errorf("metrics.textfile_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
