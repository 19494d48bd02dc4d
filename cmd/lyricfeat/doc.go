// Command lyricfeat fetches song lyrics from Genius into a local cache and
// turns the cache into a per-track feature table.
//
// Typical flow:
//
//	lyricfeat config init
//	lyricfeat fetch --tracks tracks.csv
//	lyricfeat features build
//	lyricfeat features show --limit 20
package main
