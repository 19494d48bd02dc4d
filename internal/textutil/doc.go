// Package textutil provides text folding and similarity helpers.
//
// The primary use cases are:
//   - Folding cache key components with full Unicode lowercase mapping
//   - Normalizing song titles so search hits can be compared to requests
//   - Term-frequency fingerprints, cosine similarity, and corpus IDF weights
//
// Tokenization lowercases text and splits on anything that is not a letter or
// digit, so non-Latin scripts survive intact.
package textutil
