package ingest

import (
	"fmt"
	"strings"
)

const (
	// DefaultChunkSize is the chunk window size in runes.
	DefaultChunkSize = 800

	// DefaultChunkOverlap is how many runes consecutive chunks share.
	DefaultChunkOverlap = 200
)

// Chunker splits document text into overlapping rune windows.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the given window size and overlap,
// both measured in runes. Overlap must be smaller than size.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidChunking, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap must be in [0, size), got %d", ErrInvalidChunking, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split breaks text into chunks. Whitespace-only windows are dropped and
// each chunk is trimmed, so the output may be shorter than the window math
// suggests. Empty input yields no chunks.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}
	}
	return chunks
}
