package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyricfeat/internal/config"
	"lyricfeat/internal/preflight"
	"lyricfeat/internal/services"
	"lyricfeat/internal/textutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set genius.access_token (or export GENIUS_ACCESS_TOKEN) before running fetch.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var online bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and check paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{Online: online})
			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				if ctx.configPath != "" {
					fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
				}
				if _, statErr := os.Stat(ctx.configPath); statErr != nil {
					fmt.Fprintln(out, "Config file did not exist; defaults were used")
				}
				fmt.Fprintf(out, "Lyric cache: %s\n", cfg.Paths.CacheFile)
				fmt.Fprintf(out, "Feature output: %s\n", cfg.Paths.OutputFile)

				rows := make([][]string, 0, len(results))
				for _, r := range results {
					status := textutil.Ternary(r.Passed, "ok", textutil.Ternary(r.Optional, "warn", "FAIL"))
					rows = append(rows, []string{r.Name, status, r.Detail})
				}
				if err := writeTable(out, []string{"Check", "Status", "Detail"}, rows, nil); err != nil {
					return err
				}
				if err := cfg.ValidateFetch(); err != nil {
					fmt.Fprintf(out, "Warning: %v\n", err)
				}
			}
			if preflight.Failed(results) {
				return services.Wrap(services.ErrConfiguration, "config", "validate", "preflight checks failed", nil)
			}
			if !jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&online, "online", false, "Also run a live Genius search with the configured token")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print check results as JSON")
	return cmd
}
