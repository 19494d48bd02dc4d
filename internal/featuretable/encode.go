package featuretable

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"lyricfeat/internal/features"
)

// WriteCSV writes rows with a Columns header. Null provenance is an empty cell.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.TrackURI, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(row Row) []string {
	id := ""
	if row.GeniusSongID != nil {
		id = strconv.FormatInt(*row.GeniusSongID, 10)
	}
	title := ""
	if row.GeniusFullTitle != nil {
		title = *row.GeniusFullTitle
	}
	return []string{
		row.TrackURI,
		id,
		title,
		strconv.FormatBool(row.LyricsFound),
		strconv.FormatBool(row.ContainsCJK),
		strconv.Itoa(row.CharLength),
		strconv.Itoa(row.WordCount),
		formatFloat(row.UniqueWordRatio),
		formatFloat(row.SentimentCompound),
		formatFloat(row.SentimentPositive),
		formatFloat(row.SentimentNegative),
		formatFloat(row.SentimentNeutral),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadCSV parses a table written by WriteCSV. Columns are matched by header
// name, so extra or reordered columns are tolerated.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	for _, name := range Columns {
		if _, ok := pos[name]; !ok {
			return nil, fmt.Errorf("csv missing column %q", name)
		}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row, err := parseCSVRecord(rec, pos)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func parseCSVRecord(rec []string, pos map[string]int) (Row, error) {
	field := func(name string) string { return rec[pos[name]] }
	var (
		row Row
		f   features.Features
		err error
	)
	row.TrackURI = field("spotify_track_uri")
	if v := field("genius_song_id"); v != "" {
		id, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return Row{}, fmt.Errorf("genius_song_id: %w", perr)
		}
		row.GeniusSongID = &id
	}
	if v := field("genius_full_title"); v != "" {
		row.GeniusFullTitle = &v
	}
	parseBool := func(name string, dst *bool) {
		if err == nil {
			if *dst, err = strconv.ParseBool(field(name)); err != nil {
				err = fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	parseInt := func(name string, dst *int) {
		if err == nil {
			if *dst, err = strconv.Atoi(field(name)); err != nil {
				err = fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	parseFloat := func(name string, dst *float64) {
		if err == nil {
			if *dst, err = strconv.ParseFloat(field(name), 64); err != nil {
				err = fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	parseBool("lyrics_found", &f.LyricsFound)
	parseBool("contains_cjk", &f.ContainsCJK)
	parseInt("lyric_len_chars", &f.CharLength)
	parseInt("lyric_len_words", &f.WordCount)
	parseFloat("unique_word_ratio", &f.UniqueWordRatio)
	parseFloat("vader_compound", &f.SentimentCompound)
	parseFloat("vader_pos", &f.SentimentPositive)
	parseFloat("vader_neg", &f.SentimentNegative)
	parseFloat("vader_neu", &f.SentimentNeutral)
	if err != nil {
		return Row{}, err
	}
	row.Features = f
	return row, nil
}

// WriteJSONL writes one JSON object per row.
func WriteJSONL(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode row %s: %w", row.TrackURI, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL parses a table written by WriteJSONL, skipping blank lines.
func ReadJSONL(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		var row Row
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("jsonl line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl: %w", err)
	}
	return rows, nil
}
