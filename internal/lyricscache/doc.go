// Package lyricscache reads and appends the line-delimited lyric cache.
//
// The cache is an append-only log of fetch attempts, one JSON object per line.
// Readers fold it into an Index where the last line for a canonical key wins.
// Read treats a missing file as an error (ErrCacheNotFound) while LoadForFetch
// treats it as an empty cache so the first fetch run can bootstrap it.
//
// Appends and reads coordinate through an advisory lock file next to the cache
// (see LockPath): appends hold it exclusively and sync each line before
// releasing, reads hold it shared, so a reader never sees a partial line.
package lyricscache
