package lyricscache

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"lyricfeat/internal/textutil"
)

// Record is one line of the lyric cache: the outcome of a single fetch attempt.
type Record struct {
	CanonicalKey    string  `json:"canonical_key"`
	TrackURI        *string `json:"spotify_track_uri"`
	Artist          string  `json:"artist"`
	Track           string  `json:"track"`
	Found           bool    `json:"found"`
	GeniusSongID    *int64  `json:"genius_song_id"`
	GeniusFullTitle *string `json:"genius_full_title"`
	// Lyrics is present only when Found is true.
	Lyrics          *string `json:"lyrics,omitempty"`
	RetrievedAtUnix int64   `json:"retrieved_at_unix"`
}

// UnmarshalJSON decodes a cache line. Provenance fields are taken as written
// by older fetchers: a song id may be an integer, an integral float or a
// numeric string, and anything else reads as absent rather than failing the
// whole cache.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		GeniusSongID    json.RawMessage `json:"genius_song_id"`
		GeniusFullTitle json.RawMessage `json:"genius_full_title"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	r.GeniusSongID = decodeSongID(aux.GeniusSongID)
	r.GeniusFullTitle = decodeFullTitle(aux.GeniusFullTitle)
	return nil
}

func decodeSongID(raw json.RawMessage) *int64 {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if len(raw) == 0 || dec.Decode(&v) != nil {
		return nil
	}
	var text string
	switch x := v.(type) {
	case json.Number:
		text = x.String()
	case string:
		text = strings.TrimSpace(x)
	default:
		return nil
	}
	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &id
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return nil
	}
	id := int64(f)
	return &id
}

func decodeFullTitle(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var title string
	if err := json.Unmarshal(raw, &title); err == nil {
		return &title
	}
	title = string(raw)
	return &title
}

// URI returns the track URI, or "" when absent.
func (r Record) URI() string {
	if r.TrackURI == nil {
		return ""
	}
	return *r.TrackURI
}

// FoundLyrics returns the lyrics when the fetch succeeded, otherwise nil.
func (r Record) FoundLyrics() *string {
	if !r.Found {
		return nil
	}
	return r.Lyrics
}

// CanonicalKey identifies a fetch attempt by track URI plus folded artist and
// title, joined with "__".
func CanonicalKey(uri, artist, title string) string {
	return strings.TrimSpace(uri) + "__" + textutil.FoldKey(artist) + "__" + textutil.FoldKey(title)
}
