package fetcher

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Track is one input row: a Spotify track and the names to search with.
type Track struct {
	URI    string `json:"spotify_track_uri"`
	Artist string `json:"artist_name_primary"`
	Title  string `json:"track_name"`
}

// LoadTracks reads the track list at path. ".csv" files need a header row
// naming the Track columns; ".jsonl" and ".ndjson" files hold one object per
// line.
func LoadTracks(path string) ([]Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tracks: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return DecodeTracksCSV(file)
	case ".jsonl", ".ndjson":
		return DecodeTracksJSONL(file)
	default:
		return nil, fmt.Errorf("tracks file %s: unsupported extension (use .csv or .jsonl)", path)
	}
}

// DecodeTracksCSV parses a header-led CSV track list. Extra columns are ignored.
func DecodeTracksCSV(r io.Reader) ([]Track, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tracks header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range []string{"spotify_track_uri", "artist_name_primary", "track_name"} {
		if _, ok := pos[col]; !ok {
			return nil, fmt.Errorf("tracks header: missing column %q", col)
		}
	}
	field := func(rec []string, col string) string {
		if i := pos[col]; i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var tracks []Track
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return tracks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tracks: %w", err)
		}
		tracks = append(tracks, Track{
			URI:    field(rec, "spotify_track_uri"),
			Artist: field(rec, "artist_name_primary"),
			Title:  field(rec, "track_name"),
		})
	}
}

// DecodeTracksJSONL parses one JSON object per line, skipping blank lines.
func DecodeTracksJSONL(r io.Reader) ([]Track, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var tracks []Track
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var t Track
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("tracks line %d: %w", lineNo, err)
		}
		tracks = append(tracks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tracks: %w", err)
	}
	return tracks, nil
}
