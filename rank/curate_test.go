package rank

import (
	"testing"

	"github.com/poiesic/recall/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileFor(resolved string) *core.QueryProfile {
	return &core.QueryProfile{
		RawText:        resolved,
		ResolvedText:   resolved,
		Class:          core.ClassBalanced,
		LexicalWeight:  1.0,
		SemanticWeight: 1.2,
		RequestedCount: 5,
	}
}

func fusedResult(id core.ID, score float64, content string) *core.FusedResult {
	return &core.FusedResult{ChunkId: id, FusedScore: score, Content: content}
}

func TestCurate_ScoreThreshold(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.05, "alpha"),
		fusedResult(2, 0.02, "beta"),
		fusedResult(3, 0.001, "gamma"),
	}

	set := Curate(results, profileFor("unrelated terms"), DefaultCurateOptions())
	require.Len(t, set.Results, 2, "sub-threshold result dropped")
	for _, r := range set.Results {
		assert.NotEqual(t, core.ID(3), r.ChunkId)
	}
}

func TestCurate_KeepsBestWhenAllBelowThreshold(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.002, "alpha"),
		fusedResult(2, 0.005, "beta"),
		fusedResult(3, 0.001, "gamma"),
	}

	set := Curate(results, profileFor("unrelated terms"), DefaultCurateOptions())
	require.Len(t, set.Results, 1, "never empty when candidates existed")
	assert.Equal(t, core.ID(2), set.Results[0].ChunkId)
}

func TestCurate_ExactMatchBoost(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.02, "the compaction strategy in detail"),
		fusedResult(2, 0.02, "completely unrelated text"),
	}

	set := Curate(results, profileFor("compaction"), DefaultCurateOptions())
	require.Len(t, set.Results, 2)

	// 0.01 exact-match + 0.005 for the single overlapping token.
	assert.Equal(t, core.ID(1), set.Results[0].ChunkId)
	assert.InDelta(t, 0.035, set.Results[0].FusedScore, 1e-9)
	assert.InDelta(t, 0.02, set.Results[1].FusedScore, 1e-9)
}

func TestCurate_OverlapBoostPerToken(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.02, "badger compaction tuning guide"),
	}

	set := Curate(results, profileFor("badger compaction tuning"), DefaultCurateOptions())
	require.Len(t, set.Results, 1)

	// Three overlapping tokens at 0.005 each plus one exact-match bonus.
	assert.InDelta(t, 0.02+0.01+3*0.005, set.Results[0].FusedScore, 1e-9)
}

func TestCurate_BoostsCanReorder(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.021, "nothing relevant here"),
		fusedResult(2, 0.02, "retrieval fusion ranking pipeline"),
	}

	set := Curate(results, profileFor("retrieval fusion ranking"), DefaultCurateOptions())
	require.Len(t, set.Results, 2)
	assert.Equal(t, core.ID(2), set.Results[0].ChunkId, "boosted result overtakes")
}

func TestCurate_Idempotent(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.02, "fusion ranking pipeline"),
		fusedResult(2, 0.03, "unrelated content"),
	}
	profile := profileFor("fusion ranking")
	opts := DefaultCurateOptions()

	once := Curate(results, profile, opts)
	twice := Curate(once.Results, profile, opts)

	require.Len(t, twice.Results, len(once.Results))
	for i := range once.Results {
		assert.Equal(t, once.Results[i].ChunkId, twice.Results[i].ChunkId)
		assert.Equal(t, once.Results[i].FusedScore, twice.Results[i].FusedScore, "boosts must not accumulate")
	}
	assert.Equal(t, once.Confidence, twice.Confidence)
}

func TestCurate_InputNotMutated(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(1, 0.02, "fusion ranking pipeline"),
	}

	Curate(results, profileFor("fusion"), DefaultCurateOptions())
	assert.Equal(t, 0.02, results[0].FusedScore)
	assert.False(t, results[0].Boosted)
}

func TestCurate_Confidence(t *testing.T) {
	opts := DefaultCurateOptions()
	profile := profileFor("zzz")

	t.Run("scaled from top score", func(t *testing.T) {
		set := Curate([]*core.FusedResult{fusedResult(1, 0.05, "text")}, profile, opts)
		assert.InDelta(t, 0.5, set.Confidence, 1e-9)
	})

	t.Run("clamped to 1", func(t *testing.T) {
		set := Curate([]*core.FusedResult{fusedResult(1, 0.5, "text")}, profile, opts)
		assert.Equal(t, 1.0, set.Confidence)
	})

	t.Run("monotonic in top score", func(t *testing.T) {
		low := Curate([]*core.FusedResult{fusedResult(1, 0.02, "text")}, profile, opts)
		high := Curate([]*core.FusedResult{fusedResult(1, 0.04, "text")}, profile, opts)
		assert.GreaterOrEqual(t, high.Confidence, low.Confidence)
	})

	t.Run("empty input forces zero", func(t *testing.T) {
		set := Curate(nil, profile, opts)
		assert.True(t, set.Empty())
		assert.Zero(t, set.Confidence)
	})
}

func TestCurate_OrderingDeterministicOnTies(t *testing.T) {
	results := []*core.FusedResult{
		fusedResult(9, 0.02, "no match"),
		fusedResult(3, 0.02, "no match"),
		fusedResult(5, 0.02, "no match"),
	}

	set := Curate(results, profileFor("zzz"), DefaultCurateOptions())
	require.Len(t, set.Results, 3)
	assert.Equal(t, core.ID(3), set.Results[0].ChunkId)
	assert.Equal(t, core.ID(5), set.Results[1].ChunkId)
	assert.Equal(t, core.ID(9), set.Results[2].ChunkId)
}
