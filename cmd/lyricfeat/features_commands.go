package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lyricfeat/internal/config"
	"lyricfeat/internal/featurestore"
	"lyricfeat/internal/featuretable"
	"lyricfeat/internal/features"
	"lyricfeat/internal/logging"
	"lyricfeat/internal/lyricscache"
	"lyricfeat/internal/services"
	"lyricfeat/internal/textutil"
)

func newFeaturesCommand(ctx *commandContext) *cobra.Command {
	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "Build and inspect the lyric feature table",
	}
	featuresCmd.AddCommand(newFeaturesBuildCommand(ctx))
	featuresCmd.AddCommand(newFeaturesShowCommand(ctx))
	return featuresCmd
}

func newFeaturesBuildCommand(ctx *commandContext) *cobra.Command {
	var cachePath string
	var outPath string
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the feature table from the lyric cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cachePath, err = resolvePathFlag(cachePath, cfg.Paths.CacheFile)
			if err != nil {
				return err
			}
			outPath, err = resolvePathFlag(outPath, cfg.Paths.OutputFile)
			if err != nil {
				return err
			}
			if _, err := featuretable.FormatForPath(outPath); err != nil {
				return services.Wrap(services.ErrConfiguration, "features", "--out", "", err)
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Features.Workers
			}

			runCtx, logger, err := ctx.runContext(cmd, "features")
			if err != nil {
				return err
			}
			started := time.Now()
			index, err := lyricscache.Read(runCtx, cachePath)
			if err != nil {
				return services.Wrap(services.ErrValidation, "features", "read cache", "", err)
			}
			ctx.metrics.ObserveCache(index.Stats())

			rows, stats, err := featuretable.Build(runCtx, index.Records(), featuretable.Options{
				Workers:   workers,
				Extractor: features.NewExtractor(nil),
			})
			if err != nil {
				return err
			}
			ctx.metrics.ObserveBuild(stats)

			runID, _ := services.RunIDFromContext(runCtx)
			info := featurestore.BuildInfo{
				RunID:      runID,
				SourcePath: cachePath,
				BuiltAt:    time.Now().UTC(),
				RowCount:   len(rows),
			}
			writeErr := writeFeatureOutput(runCtx, outPath, rows, info)
			ctx.flushMetrics(logger, writeErr)
			if writeErr != nil {
				return writeErr
			}

			cacheStats := index.Stats()
			logger.Info("feature table built",
				logging.String("output", outPath),
				logging.Int("rows", stats.Rows),
				logging.Int("lyrics_found", stats.LyricsFound),
				logging.Int("missing_uri", stats.MissingURI),
				logging.Int("duplicates", stats.Duplicates),
				logging.Int("cache_lines", cacheStats.Lines),
				logging.Int("missing_key", cacheStats.MissingKey),
				logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)))

			if jsonOutput {
				return writeJSON(cmd, struct {
					Output string             `json:"output"`
					Cache  lyricscache.Stats  `json:"cache"`
					Build  featuretable.Stats `json:"build"`
				}{outPath, cacheStats, stats})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows (%d with lyrics) to %s\n", stats.Rows, stats.LyricsFound, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&cachePath, "cache", "", "Lyric cache file (default from paths.cache_file)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file; .db/.sqlite, .csv or .jsonl (default from paths.output_file)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Extraction goroutines (default from features.workers)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print build statistics as JSON")
	return cmd
}

func newFeaturesShowCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display rows of the built feature table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outPath, err = resolvePathFlag(outPath, cfg.Paths.OutputFile)
			if err != nil {
				return err
			}
			if limit < 0 {
				return services.Wrap(services.ErrConfiguration, "features", "--limit", "must be >= 0", nil)
			}
			output, err := readFeatureOutput(cmd.Context(), outPath, limit)
			if err != nil {
				return err
			}
			rows := output.Rows
			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if info := output.Build; info != nil {
				fmt.Fprintf(out, "Built %s from %s (run %s)\n",
					info.BuiltAt.Local().Format(time.DateTime), info.SourcePath, info.RunID)
			}
			if len(rows) == 0 {
				fmt.Fprintf(out, "No feature rows in %s\n", output.Path)
				return nil
			}
			fmt.Fprintf(out, "Showing %d of %d rows from %s\n", len(rows), output.Total, output.Path)
			headers := []string{"Track", "Genius Title", "Found", "CJK", "Chars", "Words", "Unique", "Compound"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				title := ""
				if row.GeniusFullTitle != nil {
					title = *row.GeniusFullTitle
				}
				table = append(table, []string{
					row.TrackURI,
					textutil.Ternary(title == "", "-", title),
					yesNo(row.LyricsFound),
					yesNo(row.ContainsCJK),
					strconv.Itoa(row.CharLength),
					strconv.Itoa(row.WordCount),
					strconv.FormatFloat(row.UniqueWordRatio, 'f', 3, 64),
					strconv.FormatFloat(row.SentimentCompound, 'f', 3, 64),
				})
			}
			return writeTable(out, headers, table, aligns)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Feature table to read (default from paths.output_file)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print rows as JSON")
	return cmd
}

// resolvePathFlag expands flag when set, otherwise returns fallback.
func resolvePathFlag(flag, fallback string) (string, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return fallback, nil
	}
	expanded, err := config.ExpandPath(flag)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", flag, err)
	}
	return expanded, nil
}
