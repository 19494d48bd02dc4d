package lyricsclean

import (
	"strings"
	"testing"
)

func TestCleanAbsentInputs(t *testing.T) {
	for _, in := range []string{"", " ", "\n\t\n", "[Chorus]", "[Intro]\n[Outro]", "Embed", "You might also like this"} {
		if got, ok := Clean(in); ok || got != "" {
			t.Fatalf("Clean(%q) = %q, %v; want absent", in, got, ok)
		}
	}
	if CleanPtr(nil) != nil {
		t.Fatal("CleanPtr(nil) should be nil")
	}
	empty := ""
	if CleanPtr(&empty) != nil {
		t.Fatal("CleanPtr(\"\") should be nil")
	}
}

func TestCleanRemovesNoise(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"section and credits", "[Chorus] La la\n\nProduced by X", "La la"},
		{"verse markers", "[Verse 1]\nHello there\n[Chorus: Artist]\nOh oh", "Hello there Oh oh"},
		{"credit mid text", "Intro line\nWritten by Someone Else\nNext line", "Intro line Next line"},
		{"credit case insensitive", "line one\nrelease date: May 1, 2020\nline two", "line one line two"},
		{"credit only to end of line", "Keep this Produced by Y\nand this", "Keep this and this"},
		{"embed whole word", "last words 42Embed done", "last words 42Embed done"},
		{"embed standalone", "last words\nEmbed", "last words"},
		{"embed lowercase", "some embed text", "some text"},
		{"embedded not removed", "embedded feelings", "embedded feelings"},
		{"embed glued to hangul", "사랑Embed 해요", "사랑Embed 해요"},
		{"embed glued to kana", "ありがとうembed", "ありがとうembed"},
		{"embed beside hangul word", "사랑 Embed 해요", "사랑 해요"},
		{"embed after underscore", "snake_Embed x", "snake_Embed x"},
		{"repeated embed", "Embed Embed end", "end"},
		{"recommendation tail", "Real lyric\nYou might also like\nOther Song\nArtist", "Real lyric"},
		{"recommendation inline", "Real lyric you MIGHT also like more", "Real lyric"},
		{"whitespace collapse", "  a\t\tb \n\n c  ", "a b c"},
		{"non greedy brackets", "[a] keep [b]", "keep"},
		{"bracket across lines kept", "[unclosed\nline] text", "[unclosed line] text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clean(tt.in)
			if !ok {
				t.Fatalf("Clean(%q) reported absent", tt.in)
			}
			if got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanDropsEverythingAfterRecommendation(t *testing.T) {
	in := "first verse\nYou might also like\n[Chorus]\nsecond verse with words"
	got, _ := Clean(in)
	if strings.Contains(got, "second") || strings.Contains(strings.ToLower(got), "you might also like") {
		t.Fatalf("expected tail removed, got %q", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"[Chorus] La la\n\nProduced by X",
		"Hello   world\nagain",
		"사랑해 you and me",
		"one two three",
	}
	for _, in := range inputs {
		once, ok := Clean(in)
		if !ok {
			t.Fatalf("Clean(%q) absent", in)
		}
		twice, ok := Clean(once)
		if !ok || twice != once {
			t.Fatalf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
		if p := CleanPtr(&in); p == nil || *p != once {
			t.Fatalf("CleanPtr disagrees with Clean for %q", in)
		}
	}
}

func TestStripSectionHeadersKeepsLines(t *testing.T) {
	in := "[Verse 1]\nline one\nline two\n\n[Chorus]\n\nchorus line\n"
	want := "line one\nline two\n\nchorus line"
	if got := StripSectionHeaders(in); got != want {
		t.Fatalf("StripSectionHeaders = %q, want %q", got, want)
	}
}
