package featurestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lyricfeat/internal/featuretable"
)

// BuildInfo describes the run that produced the stored table.
type BuildInfo struct {
	RunID      string    `json:"run_id"`
	SourcePath string    `json:"source_path"`
	BuiltAt    time.Time `json:"built_at"`
	RowCount   int       `json:"row_count"`
}

const insertRow = `INSERT INTO lyrics_features (
	position, spotify_track_uri, genius_song_id, genius_full_title,
	lyrics_found, contains_cjk, lyric_len_chars, lyric_len_words,
	unique_word_ratio, vader_compound, vader_pos, vader_neg, vader_neu
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Replace swaps the stored table for rows in a single transaction.
func (s *Store) Replace(ctx context.Context, rows []featuretable.Row, info BuildInfo) error {
	return retryOnBusy(ctx, func() error {
		return s.replaceOnce(ctx, rows, info)
	})
}

func (s *Store) replaceOnce(ctx context.Context, rows []featuretable.Row, info BuildInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM lyrics_features"); err != nil {
		return fmt.Errorf("clear features: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRow)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			i,
			row.TrackURI,
			nullInt64(row.GeniusSongID),
			nullString(row.GeniusFullTitle),
			row.LyricsFound,
			row.ContainsCJK,
			row.CharLength,
			row.WordCount,
			row.UniqueWordRatio,
			row.SentimentCompound,
			row.SentimentPositive,
			row.SentimentNegative,
			row.SentimentNeutral,
		); err != nil {
			return fmt.Errorf("insert %s: %w", row.TrackURI, err)
		}
	}

	builtAt := info.BuiltAt
	if builtAt.IsZero() {
		builtAt = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO build_info (id, run_id, source_path, built_at_unix, row_count) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET run_id = excluded.run_id, source_path = excluded.source_path,
		 built_at_unix = excluded.built_at_unix, row_count = excluded.row_count`,
		info.RunID, info.SourcePath, builtAt.Unix(), len(rows),
	); err != nil {
		return fmt.Errorf("record build info: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit features: %w", err)
	}
	return nil
}

// Rows returns stored rows in build order. A limit of zero returns all rows.
func (s *Store) Rows(ctx context.Context, limit int) ([]featuretable.Row, error) {
	query := `SELECT spotify_track_uri, genius_song_id, genius_full_title,
		lyrics_found, contains_cjk, lyric_len_chars, lyric_len_words,
		unique_word_ratio, vader_compound, vader_pos, vader_neg, vader_neu
		FROM lyrics_features ORDER BY position`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rs, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rs.Close()

	var out []featuretable.Row
	for rs.Next() {
		var (
			row   featuretable.Row
			id    sql.NullInt64
			title sql.NullString
		)
		if err := rs.Scan(
			&row.TrackURI, &id, &title,
			&row.LyricsFound, &row.ContainsCJK, &row.CharLength, &row.WordCount,
			&row.UniqueWordRatio, &row.SentimentCompound, &row.SentimentPositive,
			&row.SentimentNegative, &row.SentimentNeutral,
		); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		if id.Valid {
			v := id.Int64
			row.GeniusSongID = &v
		}
		if title.Valid {
			v := title.String
			row.GeniusFullTitle = &v
		}
		out = append(out, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return out, nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM lyrics_features").Scan(&n); err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return n, nil
}

// LastBuild returns metadata about the most recent Replace.
func (s *Store) LastBuild(ctx context.Context) (BuildInfo, bool, error) {
	var (
		info    BuildInfo
		builtAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT run_id, source_path, built_at_unix, row_count FROM build_info WHERE id = 1",
	).Scan(&info.RunID, &info.SourcePath, &builtAt, &info.RowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return BuildInfo{}, false, nil
	}
	if err != nil {
		return BuildInfo{}, false, fmt.Errorf("read build info: %w", err)
	}
	info.BuiltAt = time.Unix(builtAt, 0)
	return info, true, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
