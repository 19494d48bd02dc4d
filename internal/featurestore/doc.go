// Package featurestore keeps the feature table in a SQLite database.
//
// Each build replaces the lyrics_features table wholesale inside one
// transaction and records the run that produced it, so readers see either the
// previous table or the new one. The schema carries a version row; a mismatch
// is reported as ErrSchemaMismatch rather than migrated, since the table can
// always be rebuilt from the lyric cache.
package featurestore
