package featuretable

import (
	"fmt"
	"path/filepath"
	"strings"

	"lyricfeat/internal/features"
)

// Columns is the feature output schema, in output order.
var Columns = []string{
	"spotify_track_uri",
	"genius_song_id",
	"genius_full_title",
	"lyrics_found",
	"contains_cjk",
	"lyric_len_chars",
	"lyric_len_words",
	"unique_word_ratio",
	"vader_compound",
	"vader_pos",
	"vader_neg",
	"vader_neu",
}

// Row is one track in the feature table.
type Row struct {
	TrackURI        string  `json:"spotify_track_uri"`
	GeniusSongID    *int64  `json:"genius_song_id"`
	GeniusFullTitle *string `json:"genius_full_title"`
	features.Features
}

// Format names an output encoding.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
	FormatJSONL  Format = "jsonl"
)

// FormatForPath picks the output format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".csv":
		return FormatCSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (use .db, .sqlite, .csv, or .jsonl)", filepath.Ext(path))
	}
}
