package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lyricfeat/internal/lyricscache"
	"lyricfeat/internal/lyricsclean"
	"lyricfeat/internal/services"
)

type cacheSummary struct {
	Path        string            `json:"path"`
	Records     int               `json:"records"`
	Found       int               `json:"found"`
	NotFound    int               `json:"not_found"`
	UniqueURIs  int               `json:"unique_uris"`
	ContainsCJK int               `json:"contains_cjk"`
	Newest      int64             `json:"newest_retrieved_at_unix"`
	Decode      lyricscache.Stats `json:"decode"`
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the lyric cache",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	return cacheCmd
}

func loadCache(cmd *cobra.Command, ctx *commandContext, pathFlag string) (*lyricscache.Index, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	path, err := resolvePathFlag(pathFlag, cfg.Paths.CacheFile)
	if err != nil {
		return nil, "", err
	}
	index, err := lyricscache.Read(cmd.Context(), path)
	if err != nil {
		return nil, "", services.Wrap(services.ErrValidation, "cache", "read", "", err)
	}
	return index, path, nil
}

func summarizeCache(path string, index *lyricscache.Index) cacheSummary {
	summary := cacheSummary{Path: path, Records: index.Len(), Decode: index.Stats()}
	uris := make(map[string]struct{})
	for _, rec := range index.Records() {
		if uri := strings.TrimSpace(rec.URI()); uri != "" {
			uris[uri] = struct{}{}
		}
		if rec.RetrievedAtUnix > summary.Newest {
			summary.Newest = rec.RetrievedAtUnix
		}
		cleaned := lyricsclean.CleanPtr(rec.FoundLyrics())
		if cleaned == nil {
			summary.NotFound++
			continue
		}
		summary.Found++
		if lyricsclean.ContainsCJK(*cleaned) {
			summary.ContainsCJK++
		}
	}
	summary.UniqueURIs = len(uris)
	return summary
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var cachePath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the lyric cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, path, err := loadCache(cmd, ctx, cachePath)
			if err != nil {
				return err
			}
			summary := summarizeCache(path, index)
			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			newest := "-"
			if summary.Newest > 0 {
				newest = time.Unix(summary.Newest, 0).Local().Format(time.DateTime)
			}
			rows := [][]string{
				{"Cache file", summary.Path},
				{"Lines", strconv.Itoa(summary.Decode.Lines)},
				{"Records", strconv.Itoa(summary.Records)},
				{"With lyrics", strconv.Itoa(summary.Found)},
				{"Without lyrics", strconv.Itoa(summary.NotFound)},
				{"Unique tracks", strconv.Itoa(summary.UniqueURIs)},
				{"CJK lyrics", strconv.Itoa(summary.ContainsCJK)},
				{"Superseded", strconv.Itoa(summary.Decode.Superseded)},
				{"Missing key", strconv.Itoa(summary.Decode.MissingKey)},
				{"Newest fetch", newest},
			}
			return writeTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
		},
	}

	cmd.Flags().StringVar(&cachePath, "cache", "", "Lyric cache file (default from paths.cache_file)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print statistics as JSON")
	return cmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	var cachePath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <track-uri>",
		Short: "Show cached records for a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _, err := loadCache(cmd, ctx, cachePath)
			if err != nil {
				return err
			}
			uri := strings.TrimSpace(args[0])
			records := index.FindByURI(uri)
			if len(records) == 0 {
				return services.Wrap(services.ErrNotFound, "cache", "show", fmt.Sprintf("no cached record for %s", uri), nil)
			}
			if jsonOutput {
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			for i, rec := range records {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "Key:        %s\n", rec.CanonicalKey)
				fmt.Fprintf(out, "Track:      %s - %s\n", rec.Artist, rec.Track)
				fmt.Fprintf(out, "Found:      %s\n", yesNo(rec.Found))
				if rec.GeniusSongID != nil {
					fmt.Fprintf(out, "Genius ID:  %d\n", *rec.GeniusSongID)
				}
				if rec.GeniusFullTitle != nil {
					fmt.Fprintf(out, "Title:      %s\n", *rec.GeniusFullTitle)
				}
				if rec.RetrievedAtUnix > 0 {
					fmt.Fprintf(out, "Retrieved:  %s\n", time.Unix(rec.RetrievedAtUnix, 0).Local().Format(time.DateTime))
				}
				if lyrics := rec.FoundLyrics(); lyrics != nil {
					fmt.Fprintf(out, "\n%s\n", strings.TrimSpace(*lyrics))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cachePath, "cache", "", "Lyric cache file (default from paths.cache_file)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print records as JSON")
	return cmd
}
