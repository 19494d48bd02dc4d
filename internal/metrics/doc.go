// Package metrics counts cache, build and fetch outcomes on a private
// Prometheus registry and can export them as a textfile-collector file.
package metrics
