package badger

import (
	"context"
	"math"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// SearchVector returns up to limit candidates ranked by cosine similarity to
// the given vector, highest first. Chunks without embeddings are skipped.
func (s *Store) SearchVector(ctx context.Context, vector []float32, limit int) ([]*core.Candidate, error) {
	if limit < 1 {
		return nil, storage.ErrInvalidLimit
	}
	if len(vector) == 0 {
		return nil, nil
	}

	scores := make(map[core.ID]float32)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			similarity := cosineSimilarity(vector, chunk.Vector)
			if similarity >= s.minSimilarity {
				scores[chunk.Id] = similarity
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	return s.rankedCandidates(ctx, scores, limit)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for zero-magnitude vectors.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
