package genius

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"lyricfeat/internal/logging"
	"lyricfeat/internal/services"
	"lyricfeat/internal/textutil"
)

// Hit is one song result from the search endpoint.
type Hit struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	FullTitle     string `json:"full_title"`
	URL           string `json:"url"`
	LyricsState   string `json:"lyrics_state"`
	Instrumental  bool   `json:"instrumental"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

// Song is a resolved match with its scraped lyric text.
type Song struct {
	ID        int64
	Title     string
	FullTitle string
	Artist    string
	URL       string
	Lyrics    string
}

type searchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result Hit    `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

var nonSongPattern = regexp.MustCompile(`(?i)(track\s?list|album art(work)?|liner notes|booklet|credits|interview|skit|instrumental|setlist)`)

// Search returns the song hits for a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "genius", "search", "query is required", nil)
	}
	endpoint := c.baseURL.JoinPath("search")
	values := endpoint.Query()
	values.Set("q", query)
	endpoint.RawQuery = values.Encode()

	body, err := c.get(ctx, endpoint.String(), true)
	if err != nil {
		return nil, classify("search", err)
	}
	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, services.Wrap(services.ErrExternalService, "genius", "decode search", "", err)
	}
	hits := make([]Hit, 0, len(payload.Response.Hits))
	for _, h := range payload.Response.Hits {
		if h.Type != "" && h.Type != "song" {
			continue
		}
		hits = append(hits, h.Result)
	}
	return hits, nil
}

// SearchSong finds the best hit for artist and title and scrapes its
// lyrics. It returns nil without error when no acceptable match exists.
func (c *Client) SearchSong(ctx context.Context, artist, title string) (*Song, error) {
	term := strings.TrimSpace(title + " " + artist)
	hits, err := c.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	hit, ok := selectHit(hits, artist, title, c.matchThreshold)
	if !ok {
		c.logger.Debug("no genius match", logging.String("query", term), logging.Int("hits", len(hits)))
		return nil, nil
	}
	if c.skipNonSongs && !isLyricsHit(hit) {
		c.logger.Debug("skipping non-song result",
			logging.String("full_title", hit.FullTitle),
			logging.String("lyrics_state", hit.LyricsState))
		return nil, nil
	}
	lyrics, err := c.Lyrics(ctx, hit.URL)
	if err != nil {
		return nil, err
	}
	return &Song{
		ID:        hit.ID,
		Title:     hit.Title,
		FullTitle: hit.FullTitle,
		Artist:    hit.PrimaryArtist.Name,
		URL:       hit.URL,
		Lyrics:    lyrics,
	}, nil
}

// selectHit prefers an exact normalized title match, then the most similar
// title at or above threshold. Artist similarity breaks ties.
func selectHit(hits []Hit, artist, title string, threshold float64) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	bestIdx := -1
	bestTitle, bestArtist := -1.0, -1.0
	for i, hit := range hits {
		titleScore := textutil.TitleSimilarity(title, hit.Title)
		artistScore := textutil.TitleSimilarity(artist, hit.PrimaryArtist.Name)
		if titleScore < threshold {
			continue
		}
		if titleScore > bestTitle || (titleScore == bestTitle && artistScore > bestArtist) {
			bestIdx, bestTitle, bestArtist = i, titleScore, artistScore
		}
	}
	if bestIdx < 0 {
		return Hit{}, false
	}
	return hits[bestIdx], true
}

func isLyricsHit(hit Hit) bool {
	if hit.Instrumental {
		return false
	}
	if hit.LyricsState != "" && hit.LyricsState != "complete" {
		return false
	}
	return !nonSongPattern.MatchString(hit.Title)
}

