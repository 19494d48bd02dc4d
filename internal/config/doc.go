// Package config loads, normalizes, and validates lyricfeat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies environment overrides such as
// GENIUS_ACCESS_TOKEN. The Config type centralizes every knob the CLI needs so
// cache/output locations and Genius credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
