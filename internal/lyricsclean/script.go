package lyricsclean

// ContainsCJK reports whether text holds any CJK Unified Ideograph, Hiragana,
// Katakana, or Hangul syllable.
func ContainsCJK(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF:
			return true
		case r >= 0x3040 && r <= 0x30FF:
			return true
		case r >= 0xAC00 && r <= 0xD7AF:
			return true
		}
	}
	return false
}
