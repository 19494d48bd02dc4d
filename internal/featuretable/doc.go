// Package featuretable materializes cache records into the per-track feature
// table and reads and writes its flat-file encodings.
//
// Build drops records without a track URI and keeps the last record for each
// URI before extracting features, fanning extraction out over a bounded
// number of goroutines while preserving input order. CSV and JSONL share the
// column names in Columns; SQLite output lives in the featurestore package.
package featuretable
