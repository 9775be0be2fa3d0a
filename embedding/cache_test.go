package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/core"
)

func TestNewCache_RequiresEmbedder(t *testing.T) {
	_, err := NewCache(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestNewCache_RejectsInvalidCapacity(t *testing.T) {
	_, err := NewCache(mock.NewMockEmbedder(), WithCapacity(0))
	assert.Error(t, err)
}

func TestCache_HitAvoidsProviderCall(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	cache, err := NewCache(embedder)
	require.NoError(t, err)

	ctx := context.Background()

	first, err := cache.Embed(ctx, "hybrid retrieval")
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.CallCount())

	second, err := cache.Embed(ctx, "hybrid retrieval")
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.CallCount(), "hit must not reach the provider")
	assert.Equal(t, first, second)

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCache_NormalizedKeySharesEntry(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	cache, err := NewCache(embedder)
	require.NoError(t, err)

	ctx := context.Background()

	first, err := cache.Embed(ctx, "  Vector Search  ")
	require.NoError(t, err)

	second, err := cache.Embed(ctx, "vector search")
	require.NoError(t, err)

	assert.Equal(t, 1, embedder.CallCount())
	assert.Equal(t, first, second)
	assert.True(t, cache.Contains("VECTOR SEARCH"))
	assert.Equal(t, 1, cache.Len())
}

func TestCache_ProviderReceivesNormalizedText(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	var seen string
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		seen = text
		return []float32{1, 0}, nil
	}

	cache, err := NewCache(embedder)
	require.NoError(t, err)

	_, err = cache.Embed(context.Background(), "  How Does RRF Work?  ")
	require.NoError(t, err)
	assert.Equal(t, "how does rrf work?", seen)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	cache, err := NewCache(embedder, WithCapacity(2))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cache.Embed(ctx, "alpha")
	require.NoError(t, err)
	_, err = cache.Embed(ctx, "beta")
	require.NoError(t, err)

	// Touch alpha so beta becomes the eviction candidate.
	_, err = cache.Embed(ctx, "alpha")
	require.NoError(t, err)

	_, err = cache.Embed(ctx, "gamma")
	require.NoError(t, err)

	assert.Equal(t, 2, cache.Len())
	assert.True(t, cache.Contains("alpha"))
	assert.False(t, cache.Contains("beta"))
	assert.True(t, cache.Contains("gamma"))

	// Evicted key requires a fresh provider call.
	calls := embedder.CallCount()
	_, err = cache.Embed(ctx, "beta")
	require.NoError(t, err)
	assert.Equal(t, calls+1, embedder.CallCount())
}

func TestCache_ProviderErrorNotCached(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	boom := errors.New("connection refused")
	failures := 0
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if failures == 0 {
			failures++
			return nil, boom
		}
		return []float32{0.5}, nil
	}

	cache, err := NewCache(embedder)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cache.Embed(ctx, "flaky query")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmbeddingProvider)
	assert.ErrorIs(t, err, boom)
	assert.False(t, cache.Contains("flaky query"))

	// Next attempt reaches the provider again and succeeds.
	vector, err := cache.Embed(ctx, "flaky query")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, vector)
	assert.True(t, cache.Contains("flaky query"))
}

func TestCache_Purge(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	cache, err := NewCache(embedder)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err = cache.Embed(ctx, fmt.Sprintf("query %d", i))
		require.NoError(t, err)
	}
	require.Equal(t, 3, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}
