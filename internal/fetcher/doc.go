// Package fetcher drives the resumable lyric fetch: it walks a track list,
// skips tracks whose canonical key is already cached, asks a SongSource for
// each remaining track, and appends every outcome to the lyric cache.
package fetcher
