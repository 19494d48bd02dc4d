// Package preflight provides readiness checks for the filesystem paths and
// the Genius API that lyricfeat depends on.
//
// The CLI "lyricfeat config validate" runs RunAll and prints each Result.
// The Genius reachability check only runs when online checks are requested,
// so validation works offline by default.
package preflight
