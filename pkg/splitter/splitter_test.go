package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_PacksPiecesUpToChunkSize(t *testing.T) {
	text := "aaaa\nbbbb\ncccc\ndddd"

	chunks := Split(text, 10, 0, "\n")

	assert.Equal(t, []string{"aaaa\nbbbb", "cccc\ndddd"}, chunks)
}

func TestSplit_OverlapSeedsNextChunk(t *testing.T) {
	text := "aaaa\nbbbb\ncccc"

	chunks := Split(text, 10, 4, "\n")

	assert.Equal(t, []string{"aaaa\nbbbb", "bbbb\ncccc"}, chunks)
}

func TestSplit_OversizedPieceEmittedWhole(t *testing.T) {
	long := strings.Repeat("x", 50)
	text := "short\n" + long + "\ntail"

	chunks := Split(text, 10, 0, "\n")

	found := false
	for _, c := range chunks {
		if strings.Contains(c, long) {
			found = true
		}
	}
	assert.True(t, found, "oversized piece must not be truncated")
}

func TestSplit_Deterministic(t *testing.T) {
	text := "The quick brown fox\njumps over\nthe lazy dog\nagain and again\nand again"

	first := Split(text, 25, 5, "\n")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Split(text, 25, 5, "\n"))
	}
}

func TestSplit_ReconstructsOriginalText(t *testing.T) {
	text := "alpha\nbeta\ngamma\ndelta\nepsilon\nzeta"

	chunks := Split(text, 12, 0, "\n")

	// Without overlap, joining the chunks at the separator restores the input.
	assert.Equal(t, text, strings.Join(chunks, "\n"))
}

func TestSplit_MultibyteTextPacksByRuneCount(t *testing.T) {
	// Four runes per piece, twelve bytes each in UTF-8. Two pieces plus the
	// separator fit in a 10-rune window exactly like the ASCII case.
	text := "ああああ\nいいいい\nうううう\nええええ"

	chunks := Split(text, 10, 0, "\n")

	assert.Equal(t, []string{"ああああ\nいいいい", "うううう\nええええ"}, chunks)
}

func TestSplit_MultibyteOverlapSeedsNextChunk(t *testing.T) {
	text := "ああああ\nいいいい\nうううう"

	chunks := Split(text, 10, 4, "\n")

	assert.Equal(t, []string{"ああああ\nいいいい", "いいいい\nうううう"}, chunks)
}

func TestSplit_EdgeCases(t *testing.T) {
	assert.Nil(t, Split("", 10, 2, "\n"))
	assert.Equal(t, []string{"hello"}, Split("hello", 10, 2, "\n"))
	// Overlap >= chunk size falls back to no overlap instead of looping.
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, Split("aaaa\nbbbb\ncccc", 10, 10, "\n"))
}
