// Package lyricsclean normalizes scraped lyric text and classifies its script.
//
// Clean removes section markers ("[Chorus]"), credit lines ("Produced by ..."),
// "Embed" page artifacts, and trailing recommendation widgets, then collapses
// whitespace. Text that cleans to nothing is reported as absent rather than as
// an empty string.
package lyricsclean
