package storage

import (
	"context"

	"github.com/poiesic/recall/core"
)

// ChunkRepository provides operations for managing document chunks.
// Implementations must be thread-safe and support concurrent access.
type ChunkRepository interface {
	// AddChunks adds one or more chunks to storage and indexes them for
	// lexical search. Chunks are validated before writing.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) error

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// DeleteChunks removes chunks by their IDs along with their index
	// entries. Returns ErrNotFound if any chunk doesn't exist.
	DeleteChunks(ctx context.Context, ids ...core.ID) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)
}

// LexicalSearcher ranks stored chunks against query terms.
type LexicalSearcher interface {
	// SearchLexical returns up to limit candidates ranked by accumulated
	// term frequency of the query's tokens, highest first. Ranks are
	// 1-based and candidate ids are unique. An empty result is not an
	// error.
	SearchLexical(ctx context.Context, query string, limit int) ([]*core.Candidate, error)
}

// VectorSearcher ranks stored chunks against an embedding vector.
type VectorSearcher interface {
	// SearchVector returns up to limit candidates ranked by cosine
	// similarity to the given vector, highest first. Ranks are 1-based
	// and candidate ids are unique. An empty result is not an error.
	SearchVector(ctx context.Context, vector []float32, limit int) ([]*core.Candidate, error)
}

// Store combines chunk storage with both retrieval indexes.
type Store interface {
	ChunkRepository
	LexicalSearcher
	VectorSearcher

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
