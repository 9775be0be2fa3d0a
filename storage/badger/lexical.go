package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// SearchLexical returns up to limit candidates ranked by accumulated term
// frequency of the query's tokens, highest first.
func (s *Store) SearchLexical(ctx context.Context, query string, limit int) ([]*core.Candidate, error) {
	if limit < 1 {
		return nil, storage.ErrInvalidLimit
	}

	terms := core.Tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	scores := make(map[core.ID]float32)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, term := range terms {
			partial := makePartialPostingKey(term)
			opts := badger.DefaultIteratorOptions
			opts.Prefix = partial
			iter := tx.NewIterator(opts)

			for iter.Seek(partial); iter.Valid(); iter.Next() {
				id, ok := postingChunkID(iter.Item().Key(), partial)
				if !ok {
					continue
				}

				var tf uint32
				if err := iter.Item().Value(func(val []byte) error {
					var err error
					tf, err = unmarshalTermFrequency(val)
					return err
				}); err != nil {
					iter.Close()
					return err
				}
				scores[id] += float32(tf)
			}
			iter.Close()
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

// rankedCandidates turns a score map into a ranked, content-bearing
// candidate list. Ties break by chunk id ascending so ranks are stable.
func (s *Store) rankedCandidates(ctx context.Context, scores map[core.ID]float32, limit int) ([]*core.Candidate, error) {
	type scored struct {
		id    core.ID
		score float32
	}
	ordered := make([]scored, 0, len(scores))
	for id, score := range scores {
		ordered = append(ordered, scored{id: id, score: score})
	}
	slices.SortFunc(ordered, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		if a.id < b.id {
			return -1
		}
		if a.id > b.id {
			return 1
		}
		return 0
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	candidates := make([]*core.Candidate, 0, len(ordered))
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for i, entry := range ordered {
			chunk, err := s.readChunk(tx, makeChunkKey(entry.id))
			if err != nil {
				return err
			}
			if chunk == nil {
				continue
			}
			candidates = append(candidates, &core.Candidate{
				ChunkId:  chunk.Id,
				Content:  chunk.Content,
				Metadata: chunk.Metadata,
				Rank:     i + 1,
				RawScore: entry.score,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Ranks must stay dense if a chunk vanished between scoring and read.
	for i, candidate := range candidates {
		candidate.Rank = i + 1
	}
	return candidates, nil
}
