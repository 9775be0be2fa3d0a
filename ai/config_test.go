package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.GeneratorModel)
	assert.Equal(t, 0.7, cfg.HighConfidence)
	assert.Equal(t, 0.4, cfg.MediumConfidence)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.GeneratorHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithGeneratorHost("http://generate:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://generate:9090/v1", cfg.GeneratorHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithGeneratorModel("gpt-4o-mini"),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.GeneratorModel)
	})

	t.Run("with custom tiers", func(t *testing.T) {
		cfg := NewConfig(WithConfidenceTiers(0.8, 0.5))

		assert.Equal(t, 0.8, cfg.HighConfidence)
		assert.Equal(t, 0.5, cfg.MediumConfidence)
	})
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"missing suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()

			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.GeneratorHost)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing generator model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GeneratorModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing hosts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("medium above high", func(t *testing.T) {
		cfg := NewConfig(WithConfidenceTiers(0.5, 0.6))
		assert.Error(t, cfg.Validate())
	})

	t.Run("high above one", func(t *testing.T) {
		cfg := NewConfig(WithConfidenceTiers(1.2, 0.4))
		assert.Error(t, cfg.Validate())
	})
}

func TestTierForConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		want       ConfidenceTier
	}{
		{0.9, TierHigh},
		{0.7, TierHigh},
		{0.69, TierMedium},
		{0.4, TierMedium},
		{0.39, TierLow},
		{0.0, TierLow},
	}

	for _, tt := range tests {
		got := TierForConfidence(tt.confidence, 0.7, 0.4)
		assert.Equal(t, tt.want, got, "confidence %v", tt.confidence)
	}
}

func TestConfidenceTier_String(t *testing.T) {
	assert.Equal(t, "high", TierHigh.String())
	assert.Equal(t, "medium", TierMedium.String())
	assert.Equal(t, "low", TierLow.String())
	assert.Equal(t, "unknown", ConfidenceTier(0).String())
}
