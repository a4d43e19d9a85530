package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Hello World", "hello-world"},
		{"diacritics", "Über Go!", "uber-go"},
		{"punctuation collapses", "Go: the good, the bad & the ugly", "go-the-good-the-bad-the-ugly"},
		{"leading and trailing junk", "  --What's Next?--  ", "what-s-next"},
		{"empty", "", ""},
		{"only symbols", "!!! ???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

func TestSlug_CapsLength(t *testing.T) {
	got := Slug(strings.Repeat("abcde ", 30))
	assert.LessOrEqual(t, len(got), maxSlugLen)
	assert.NotEmpty(t, got)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one! Is this third? Yes.")
	require.Len(t, got, 4)
	assert.Equal(t, "First sentence.", got[0])
	assert.Equal(t, "Second one!", got[1])
	assert.Equal(t, "Is this third?", got[2])
	assert.Equal(t, "Yes.", got[3])
}

func TestSplitSentences_CJKPunctuation(t *testing.T) {
	got := SplitSentences("第一句。第二句！")
	// CJK terminators are not followed by spaces; the final terminator still
	// closes the text.
	require.NotEmpty(t, got)
	assert.Equal(t, "第一句。第二句！", strings.Join(got, ""))
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	got := SplitSentences("no punctuation here at all")
	require.Len(t, got, 1)
	assert.Equal(t, "no punctuation here at all", got[0])
}

func TestSplitSentences_Empty(t *testing.T) {
	assert.Nil(t, SplitSentences("   "))
}

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("first para\n\nsecond para\n\n\n\n  third  \n\n")
	require.Len(t, got, 3)
	assert.Equal(t, "first para", got[0])
	assert.Equal(t, "second para", got[1])
	assert.Equal(t, "third", got[2])
}

func TestPackChunks_GreedyPacking(t *testing.T) {
	pieces := []string{"aaaa", "bbbb", "cccc", "dddd"}
	got := PackChunks(pieces, 10, " ")

	require.Len(t, got, 2)
	assert.Equal(t, "aaaa bbbb", got[0])
	assert.Equal(t, "cccc dddd", got[1])
}

func TestPackChunks_PreservesOrderAndContent(t *testing.T) {
	pieces := []string{"one.", "two.", "three.", "four.", "five."}
	got := PackChunks(pieces, 12, " ")

	for _, chunk := range got {
		assert.LessOrEqual(t, len(chunk), 12)
	}
	assert.Equal(t, strings.Join(pieces, " "), strings.Join(got, " "))
}

func TestPackChunks_HardSplitsOversizedPiece(t *testing.T) {
	long := strings.Repeat("x", 25)
	got := PackChunks([]string{"ab", long, "cd"}, 10, " ")

	for _, chunk := range got {
		assert.LessOrEqual(t, len(chunk), 10)
	}
	assert.Equal(t, "ab"+long+"cd", strings.Join(got, ""))
}

func TestPackChunks_HardSplitRespectsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("日本語テキスト", 10) // 3 bytes per rune
	got := PackChunks([]string{long}, 10, " ")

	var rebuilt strings.Builder
	for _, chunk := range got {
		assert.LessOrEqual(t, len(chunk), 10)
		assert.True(t, utf8.ValidString(chunk), "chunk must not split a rune")
		rebuilt.WriteString(chunk)
	}
	assert.Equal(t, long, rebuilt.String())
}

func TestPackChunks_NoLimitPassesThrough(t *testing.T) {
	pieces := []string{"a", "b"}
	assert.Equal(t, pieces, PackChunks(pieces, 0, " "))
}
