package splitter

import (
	"strings"
	"unicode/utf8"
)

// Split breaks text at separator boundaries and greedily packs the pieces
// into windows of at most chunkSize characters. The last chunkOverlap
// characters of each emitted window seed the next one so context survives
// chunk boundaries.
//
// Deterministic: identical input and config always produce an identical
// chunk sequence. A single piece longer than chunkSize is emitted as its
// own oversized chunk; content is never truncated or dropped.
func Split(text string, chunkSize int, chunkOverlap int, separator string) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		return []string{text}
	}
	if chunkOverlap >= chunkSize || chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if separator == "" {
		separator = "\n"
	}

	pieces := strings.Split(text, separator)

	var chunks []string
	var current string
	for _, piece := range pieces {
		switch {
		case current == "":
			current = piece
		// Sizes are in runes, the same unit overlapTail trims in.
		case utf8.RuneCountInString(current)+utf8.RuneCountInString(separator)+utf8.RuneCountInString(piece) <= chunkSize:
			current = current + separator + piece
		default:
			chunks = append(chunks, current)
			if tail := overlapTail(current, chunkOverlap); tail != "" {
				current = tail + separator + piece
			} else {
				current = piece
			}
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// overlapTail returns the trailing overlap runes of chunk.
func overlapTail(chunk string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	runes := []rune(chunk)
	if len(runes) <= overlap {
		return chunk
	}
	return string(runes[len(runes)-overlap:])
}
