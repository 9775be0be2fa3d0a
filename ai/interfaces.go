package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use and deterministic:
// identical normalized input must produce an identical vector, an assumption
// the embedding cache relies on.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, more efficiently than repeated EmbedText calls. The returned
	// slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a grounded answer from retrieved context passages.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateAnswer answers the query from the given passages. The tier
	// selects an instruction template matched to how reliable the retrieved
	// context is estimated to be.
	GenerateAnswer(ctx context.Context, query string, passages []string, tier ConfidenceTier) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the answer generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
