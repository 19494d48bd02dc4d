package config

const (
	defaultCacheFile            = "~/.local/share/lyricfeat/lyrics_cache.jsonl"
	defaultOutputFile           = "~/.local/share/lyricfeat/lyrics_features.db"
	defaultGeniusBaseURL        = "https://api.genius.com"
	defaultGeniusUserAgent      = "lyricfeat/dev"
	defaultGeniusTimeoutSeconds = 8
	defaultGeniusRetries        = 1
	defaultGeniusSleepSeconds   = 0.3
	defaultGeniusMatchThreshold = 0.5
	defaultFetchLogEvery        = 25
	defaultVocabTopN            = 50
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheFile:  defaultCacheFile,
			OutputFile: defaultOutputFile,
		},
		Genius: Genius{
			BaseURL:              defaultGeniusBaseURL,
			UserAgent:            defaultGeniusUserAgent,
			TimeoutSeconds:       defaultGeniusTimeoutSeconds,
			Retries:              defaultGeniusRetries,
			SleepSeconds:         defaultGeniusSleepSeconds,
			RemoveSectionHeaders: true,
			SkipNonSongs:         true,
			MatchThreshold:       defaultGeniusMatchThreshold,
		},
		Fetch: Fetch{
			LogEvery: defaultFetchLogEvery,
		},
		Vocab: Vocab{
			TopN:             defaultVocabTopN,
			ExcludeStopwords: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
