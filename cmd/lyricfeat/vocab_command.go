package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lyricfeat/internal/services"
	"lyricfeat/internal/vocab"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	var cachePath string
	var topN int
	var keepStopwords bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Report the most frequent word stems in cached lyrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				topN = cfg.Vocab.TopN
			}
			if topN < 0 {
				return services.Wrap(services.ErrConfiguration, "vocab", "--top", "must be >= 0", nil)
			}
			exclude := cfg.Vocab.ExcludeStopwords
			if cmd.Flags().Changed("keep-stopwords") {
				exclude = !keepStopwords
			}

			index, _, err := loadCache(cmd, ctx, cachePath)
			if err != nil {
				return err
			}
			report := vocab.Analyze(index.Records(), vocab.Options{TopN: topN, ExcludeStopwords: exclude})
			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d tracks with lyrics, %d tokens, %d distinct stems\n",
				report.Documents, report.Tokens, report.UniqueStems)
			if len(report.Terms) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(report.Terms))
			for i, term := range report.Terms {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					term.Stem,
					term.Example,
					strconv.Itoa(term.Count),
					strconv.Itoa(term.Tracks),
					strconv.FormatFloat(term.IDF, 'f', 3, 64),
				})
			}
			return writeTable(out,
				[]string{"#", "Stem", "Example", "Count", "Tracks", "IDF"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight})
		},
	}

	cmd.Flags().StringVar(&cachePath, "cache", "", "Lyric cache file (default from paths.cache_file)")
	cmd.Flags().IntVarP(&topN, "top", "n", 0, "Number of stems to list (default from vocab.top_n; 0 lists all)")
	cmd.Flags().BoolVar(&keepStopwords, "keep-stopwords", false, "Count English stopwords and vocal filler")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}
