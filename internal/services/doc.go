// Package services defines shared utilities consumed by the pipeline stages
// and the Genius integration.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and track URIs for
//     logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent CLI exit codes.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
