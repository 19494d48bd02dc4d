package genius

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"lyricfeat/internal/lyricsclean"
	"lyricfeat/internal/services"
)

const lyricsContainerSelector = `div[data-lyrics-container="true"]`

// Lyrics downloads a Genius song page and extracts the lyric text.
func (c *Client) Lyrics(ctx context.Context, pageURL string) (string, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return "", services.Wrap(services.ErrValidation, "genius", "lyrics", "song url is required", nil)
	}
	body, err := c.get(ctx, pageURL, false)
	if err != nil {
		return "", classify("lyrics", err)
	}
	text, err := extractLyrics(body)
	if err != nil {
		return "", services.Wrap(services.ErrExternalService, "genius", "parse lyrics page", "", err)
	}
	if c.removeSectionHeaders {
		text = lyricsclean.StripSectionHeaders(text)
	}
	return strings.Trim(text, "\n"), nil
}

func extractLyrics(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	containers := doc.Find(lyricsContainerSelector)
	containers.Find(`[data-exclude-from-selection="true"]`).Remove()
	containers.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})

	parts := make([]string, 0, containers.Length())
	containers.Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, "\n"), nil
}
