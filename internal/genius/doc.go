// Package genius is a small client for the Genius search API and song
// pages. Requests are paced and retried; lyric text is scraped from the
// page containers with goquery.
package genius
