package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Store implements storage.Store for BadgerDB.
//
// Chunks are stored under content-based IDs, so re-adding identical content
// is an idempotent overwrite. Each added chunk also writes one posting entry
// per distinct token, carrying the token's frequency in the chunk.
type Store struct {
	backend       *Backend
	minSimilarity float32
	logger        *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store) error

// WithMinSimilarity sets the minimum cosine similarity for vector search
// results. Default is 0 (no floor).
func WithMinSimilarity(min float32) Option {
	return func(s *Store) error {
		s.minSimilarity = min
		return nil
	}
}

// NewStore opens a BadgerDB-backed store at the given path.
func NewStore(path string, opts ...Option) (storage.Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newStore(backend, opts...)
}

func newStore(backend *Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badger-store"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			backend.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}

// WithTransaction delegates to the backend.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// AddChunks adds one or more chunks to storage and indexes them.
func (s *Store) AddChunks(ctx context.Context, chunks ...*core.Chunk) error {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(chunk.Id)

			// Overwriting an existing chunk must not leave stale postings.
			old, err := s.readChunk(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				if err := s.deletePostings(tx, old); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
			if err := s.writePostings(tx, chunk); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunk retrieves a single chunk by ID.
func (s *Store) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = s.readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunks retrieves multiple chunks by their IDs.
func (s *Store) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error) {
	var result []*core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			chunk, err := s.readChunk(tx, makeChunkKey(id))
			if err != nil {
				return err
			}
			if chunk != nil {
				result = append(result, chunk)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteChunks removes chunks by their IDs along with their postings.
func (s *Store) DeleteChunks(ctx context.Context, ids ...core.ID) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkKey(id)
			chunk, err := s.readChunk(tx, key)
			if err != nil {
				return err
			}
			if chunk == nil {
				return storage.ErrNotFound
			}

			if err := s.deletePostings(tx, chunk); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountChunks returns the number of stored chunks.
func (s *Store) CountChunks(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readChunk reads a chunk from the transaction. Missing keys return nil, nil.
func (s *Store) readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}

// writePostings adds one posting per distinct token with its frequency.
func (s *Store) writePostings(tx *badger.Txn, chunk *core.Chunk) error {
	for term, tf := range termFrequencies(chunk.Content) {
		key := makePostingKey(term, chunk.Id)
		if err := tx.Set(key, marshalTermFrequency(tf)); err != nil {
			return err
		}
	}
	return nil
}

// deletePostings removes all posting entries for a chunk.
func (s *Store) deletePostings(tx *badger.Txn, chunk *core.Chunk) error {
	for term := range termFrequencies(chunk.Content) {
		if err := tx.Delete(makePostingKey(term, chunk.Id)); err != nil {
			return err
		}
	}
	return nil
}

// termFrequencies counts token occurrences in content.
func termFrequencies(content string) map[string]uint32 {
	freqs := make(map[string]uint32)
	for _, token := range core.Tokenize(content) {
		freqs[token]++
	}
	return freqs
}
