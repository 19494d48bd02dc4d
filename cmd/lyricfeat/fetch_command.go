package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lyricfeat/internal/config"
	"lyricfeat/internal/fetcher"
	"lyricfeat/internal/genius"
	"lyricfeat/internal/services"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var tracksPath string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch lyrics for tracks not yet in the cache",
		Long: `Fetch looks up each track of a CSV or JSONL track list on Genius and appends
one record per attempt to the lyric cache. Tracks already cached are skipped,
so an interrupted run resumes where it stopped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateFetch(); err != nil {
				return services.Wrap(services.ErrConfiguration, "fetch", "validate", "", err)
			}
			path, err := config.ExpandPath(strings.TrimSpace(tracksPath))
			if err != nil {
				return fmt.Errorf("resolve tracks path: %w", err)
			}
			tracks, err := fetcher.LoadTracks(path)
			if err != nil {
				return services.Wrap(services.ErrValidation, "fetch", "load tracks", "", err)
			}

			runCtx, logger, err := ctx.runContext(cmd, "fetch")
			if err != nil {
				return err
			}
			client, err := genius.New(genius.Config{
				AccessToken:          cfg.Genius.AccessToken,
				BaseURL:              cfg.Genius.BaseURL,
				UserAgent:            cfg.Genius.UserAgent,
				Timeout:              time.Duration(cfg.Genius.TimeoutSeconds) * time.Second,
				Retries:              cfg.Genius.Retries,
				MinInterval:          time.Duration(cfg.Genius.SleepSeconds * float64(time.Second)),
				RemoveSectionHeaders: cfg.Genius.RemoveSectionHeaders,
				SkipNonSongs:         cfg.Genius.SkipNonSongs,
				MatchThreshold:       cfg.Genius.MatchThreshold,
				Logger:               logger,
			})
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = cfg.Fetch.Limit
			}
			if limit < 0 {
				return services.Wrap(services.ErrConfiguration, "fetch", "--limit", "must be >= 0", nil)
			}
			summary, runErr := fetcher.Run(runCtx, client, tracks, fetcher.Options{
				CachePath: cfg.Paths.CacheFile,
				Limit:     limit,
				LogEvery:  cfg.Fetch.LogEvery,
				Logger:    logger,
				Metrics:   ctx.metrics,
			})
			ctx.flushMetrics(logger, runErr)
			if runErr != nil {
				return runErr
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d new (%d found, %d errors) of %d seen; cache holds %d records\n",
				summary.Fetched, summary.Found, summary.Errors, summary.Seen, summary.CacheSize)
			if summary.SkippedCached > 0 || summary.SkippedInvalid > 0 {
				fmt.Fprintf(out, "Skipped %d cached and %d incomplete tracks\n", summary.SkippedCached, summary.SkippedInvalid)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tracksPath, "tracks", "t", "", "Track list (.csv or .jsonl) with spotify_track_uri, artist_name_primary, track_name")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum new fetches this run (0 for no limit; default from fetch.limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	_ = cmd.MarkFlagRequired("tracks")
	return cmd
}
