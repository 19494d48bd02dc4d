// Package features turns raw lyric text into the fixed per-track feature
// record: length statistics, lexical diversity, script detection, and VADER
// sentiment scores.
package features
