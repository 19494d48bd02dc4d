package main

import (
	"context"
	"fmt"

	"lyricfeat/internal/featurestore"
	"lyricfeat/internal/featuretable"
)

// writeFeatureOutput stores rows at path in the format its extension names.
func writeFeatureOutput(ctx context.Context, path string, rows []featuretable.Row, info featurestore.BuildInfo) error {
	format, err := featuretable.FormatForPath(path)
	if err != nil {
		return err
	}
	if format != featuretable.FormatSQLite {
		return featuretable.WriteFile(ctx, path, rows)
	}
	store, err := featurestore.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Replace(ctx, rows, info); err != nil {
		return fmt.Errorf("store feature table: %w", err)
	}
	return nil
}

// featureOutput is what features show reads back from a built table.
type featureOutput struct {
	Path  string
	Rows  []featuretable.Row
	Total int
	Build *featurestore.BuildInfo
}

// readFeatureOutput loads up to limit rows (0 for all) along with the total
// row count and, for SQLite output, the last build record.
func readFeatureOutput(ctx context.Context, path string, limit int) (featureOutput, error) {
	format, err := featuretable.FormatForPath(path)
	if err != nil {
		return featureOutput{}, err
	}
	if format != featuretable.FormatSQLite {
		rows, err := featuretable.ReadFile(path)
		if err != nil {
			return featureOutput{}, err
		}
		out := featureOutput{Path: path, Rows: rows, Total: len(rows)}
		if limit > 0 && len(rows) > limit {
			out.Rows = rows[:limit]
		}
		return out, nil
	}

	store, err := featurestore.OpenExisting(ctx, path)
	if err != nil {
		return featureOutput{}, err
	}
	defer store.Close()
	out := featureOutput{Path: store.Path()}
	if out.Rows, err = store.Rows(ctx, limit); err != nil {
		return featureOutput{}, err
	}
	if out.Total, err = store.Count(ctx); err != nil {
		return featureOutput{}, err
	}
	info, ok, err := store.LastBuild(ctx)
	if err != nil {
		return featureOutput{}, err
	}
	if ok {
		out.Build = &info
	}
	return out, nil
}
