// Package vocab reports the most frequent word stems across cached lyrics.
package vocab
