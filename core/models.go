package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique, stable identifier for a document chunk.
// It is generated from chunk content using content-based hashing so that
// identical content always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is the minimal retrievable unit of a source document.
// Chunks are created by the ingestion pipeline and immutable once indexed;
// the retrieval core only ever reads them through search results.
type Chunk struct {
	Id       ID
	Content  string
	Metadata map[string]string // source, chunk index, etc. Opaque to ranking.
	Vector   []float32         // Embedding vector (populated during ingestion)
}

// Candidate is one entry in a single-method result list, as returned by a
// lexical or vector search provider.
type Candidate struct {
	ChunkId  ID
	Content  string
	Metadata map[string]string
	Rank     int     // 1-based position in the source method's ordering
	RawScore float32 // Method-native relevance. Not comparable across methods.
}

// QueryClass identifies the kind of query the analyzer detected.
type QueryClass int

const (
	// ClassExactTerm means the query contains quoted substrings.
	ClassExactTerm QueryClass = iota + 1
	// ClassConceptual means the query reads like a natural question.
	ClassConceptual
	// ClassKeyword means the query is a short bag of search terms.
	ClassKeyword
	// ClassBalanced is the general default for everything else.
	ClassBalanced
)

// String returns a human-readable name for the query class.
func (c QueryClass) String() string {
	switch c {
	case ClassExactTerm:
		return "exact-term"
	case ClassConceptual:
		return "conceptual"
	case ClassKeyword:
		return "keyword"
	case ClassBalanced:
		return "balanced"
	default:
		return "unknown"
	}
}

// QueryProfile is the analyzer's output for one incoming query.
// It is constructed per request and discarded when the request completes.
type QueryProfile struct {
	RawText        string
	ResolvedText   string // After conversational reference resolution
	Class          QueryClass
	LexicalWeight  float64 // Multiplicative RRF factor, not a probability
	SemanticWeight float64
	RequestedCount int // How many fused results to return
}

// FusedResult is one entry in the fused, relevance-ordered output set.
type FusedResult struct {
	ChunkId    ID
	Content    string
	Metadata   map[string]string
	FusedScore float64

	// LexicalRank and SemanticRank record the rank each source list assigned
	// to this chunk, for explainability. Zero means absent from that list.
	LexicalRank  int
	SemanticRank int

	// Boosted is set once curation boosts have been applied, so that running
	// the curator over its own output does not accumulate bonuses.
	Boosted bool
}

// ContextSet is the curated output handed to the generation layer:
// ordered post-boost results plus a confidence estimate.
type ContextSet struct {
	Results []*FusedResult

	// Confidence is a bounded, monotonic heuristic in [0,1] derived from the
	// top fused score. It is not a calibrated probability.
	Confidence float64
}

// Empty reports whether curation produced no relevant context.
func (s *ContextSet) Empty() bool {
	return s == nil || len(s.Results) == 0
}
