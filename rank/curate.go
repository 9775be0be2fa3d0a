package rank

import (
	"strings"

	"github.com/poiesic/recall/core"
)

// Curation defaults. Empirically chosen; treat as configuration starting
// points to validate against a representative corpus.
const (
	DefaultMinScore        = 0.01
	DefaultExactMatchBonus = 0.01
	DefaultOverlapBonus    = 0.005
	DefaultConfidenceScale = 10.0
)

// CurateOptions holds the curation tunables.
type CurateOptions struct {
	// MinScore drops results scoring below it. If the filter would drop
	// everything, the single best result is kept instead: curation never
	// returns an empty set when candidates existed.
	MinScore float64

	// ExactMatchBonus is added once when any normalized query token occurs
	// verbatim in the result content.
	ExactMatchBonus float64

	// OverlapBonus is added per token shared between the query's and the
	// content's token sets.
	OverlapBonus float64

	// ConfidenceScale maps the top fused score onto [0,1]:
	// confidence = min(1, top * ConfidenceScale).
	ConfidenceScale float64
}

// DefaultCurateOptions returns the default curation tunables.
func DefaultCurateOptions() CurateOptions {
	return CurateOptions{
		MinScore:        DefaultMinScore,
		ExactMatchBonus: DefaultExactMatchBonus,
		OverlapBonus:    DefaultOverlapBonus,
		ConfidenceScale: DefaultConfidenceScale,
	}
}

// Curate filters, boosts, and confidence-annotates a fused result set.
//
// Steps, in order: score-threshold filter (with keep-best-one fallback),
// exact-match boost, term-overlap boost, re-sort, confidence estimate.
// Input results are not mutated; boosted copies are returned. Results
// already carrying the Boosted flag keep their scores, so curating the
// curator's own output is idempotent.
//
// An empty input produces an empty set with confidence 0.0: "no relevant
// context found" is an answer, not an error.
func Curate(results []*core.FusedResult, profile *core.QueryProfile, opts CurateOptions) *core.ContextSet {
	if len(results) == 0 {
		return &core.ContextSet{Confidence: 0.0}
	}

	// 1. Score threshold, keeping the best result as fallback.
	survivors := make([]*core.FusedResult, 0, len(results))
	best := results[0]
	for _, r := range results {
		if r.FusedScore > best.FusedScore {
			best = r
		}
		if r.FusedScore >= opts.MinScore {
			survivors = append(survivors, r)
		}
	}
	if len(survivors) == 0 {
		survivors = append(survivors, best)
	}

	// 2+3. Boosts, applied to copies so curation is repeatable.
	queryTokens := core.TokenSet(profile.ResolvedText)
	curated := make([]*core.FusedResult, len(survivors))
	for i, r := range survivors {
		copied := *r
		if !copied.Boosted {
			copied.FusedScore += boost(&copied, queryTokens, opts)
			copied.Boosted = true
		}
		curated[i] = &copied
	}

	// 4. Boosts can reorder results.
	SortResults(curated)

	// 5. Confidence from the post-boost top score, clamped to [0,1].
	confidence := curated[0].FusedScore * opts.ConfidenceScale
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.0 {
		confidence = 0.0
	}

	return &core.ContextSet{
		Results:    curated,
		Confidence: confidence,
	}
}

// boost computes the exact-match and term-overlap bonuses for one result.
func boost(result *core.FusedResult, queryTokens map[string]bool, opts CurateOptions) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	content := strings.ToLower(result.Content)
	contentTokens := core.TokenSet(result.Content)

	var bonus float64
	exactMatched := false
	overlap := 0
	for token := range queryTokens {
		if !exactMatched && strings.Contains(content, token) {
			exactMatched = true
		}
		if contentTokens[token] {
			overlap++
		}
	}

	if exactMatched {
		bonus += opts.ExactMatchBonus
	}
	bonus += float64(overlap) * opts.OverlapBonus

	return bonus
}
