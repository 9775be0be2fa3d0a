package rank

import (
	"fmt"
	"sort"

	"github.com/poiesic/recall/core"
)

// DefaultRRFConstant dampens rank-1 dominance. It is large enough that rank
// differences beyond roughly the top ten candidates have negligible effect.
const DefaultRRFConstant = 50.0

// FuseOptions holds the fusion tunables.
type FuseOptions struct {
	// K is the RRF smoothing constant. Values <= 0 fall back to
	// DefaultRRFConstant.
	K float64

	// LexicalWeight and SemanticWeight scale each list's rank contribution.
	LexicalWeight  float64
	SemanticWeight float64

	// Limit truncates the fused output. Zero or negative means no truncation.
	Limit int
}

// Fuse merges a lexical and a semantic candidate list into one deduplicated,
// score-ordered list using weighted Reciprocal Rank Fusion.
//
// Chunks present in both lists receive the sum of both contributions.
// Content and metadata are taken from the lexical copy when a chunk appears
// in both lists, for determinism. Output is ordered by fused score
// descending, ties broken by chunk ID ascending.
//
// Fails with core.ErrEmptyCandidateSet only when both lists are empty; a
// single empty list degrades gracefully to single-method ranking. Fails
// with core.ErrInvalidCandidateList when either list violates strict rank
// order.
func Fuse(lexical, semantic []*core.Candidate, opts FuseOptions) ([]*core.FusedResult, error) {
	if len(lexical) == 0 && len(semantic) == 0 {
		return nil, core.ErrEmptyCandidateSet
	}

	if err := core.ValidateCandidates(lexical); err != nil {
		return nil, fmt.Errorf("lexical list: %w", err)
	}
	if err := core.ValidateCandidates(semantic); err != nil {
		return nil, fmt.Errorf("semantic list: %w", err)
	}

	k := opts.K
	if k <= 0 {
		k = DefaultRRFConstant
	}

	fused := make(map[core.ID]*core.FusedResult, len(lexical)+len(semantic))

	for _, c := range lexical {
		fused[c.ChunkId] = &core.FusedResult{
			ChunkId:     c.ChunkId,
			Content:     c.Content,
			Metadata:    c.Metadata,
			FusedScore:  opts.LexicalWeight / (k + float64(c.Rank)),
			LexicalRank: c.Rank,
		}
	}

	for _, c := range semantic {
		contribution := opts.SemanticWeight / (k + float64(c.Rank))
		if result, ok := fused[c.ChunkId]; ok {
			result.FusedScore += contribution
			result.SemanticRank = c.Rank
			continue
		}
		fused[c.ChunkId] = &core.FusedResult{
			ChunkId:      c.ChunkId,
			Content:      c.Content,
			Metadata:     c.Metadata,
			FusedScore:   contribution,
			SemanticRank: c.Rank,
		}
	}

	results := make([]*core.FusedResult, 0, len(fused))
	for _, result := range fused {
		results = append(results, result)
	}

	SortResults(results)

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// SortResults orders fused results by score descending, ties broken by
// chunk ID ascending so output order is deterministic.
func SortResults(results []*core.FusedResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].FusedScore != results[j].FusedScore {
			return results[i].FusedScore > results[j].FusedScore
		}
		return results[i].ChunkId < results[j].ChunkId
	})
}
