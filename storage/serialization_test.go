package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recall/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "minimal chunk",
			chunk: &core.Chunk{
				Id:      core.IDFromContent("the fusion constant defaults to fifty"),
				Content: "the fusion constant defaults to fifty",
			},
		},
		{
			name: "chunk with metadata and vector",
			chunk: &core.Chunk{
				Id:      core.ID(7),
				Content: "reciprocal rank fusion combines two ranked lists",
				Metadata: map[string]string{
					"source":  "handbook.md",
					"section": "retrieval",
				},
				Vector: []float32{0.1, 0.2, 0.3, 0.4, 0.5},
			},
		},
		{
			name: "unicode contents",
			chunk: &core.Chunk{
				Id:      core.ID(9),
				Content: "busca híbrida 検索 🌍",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunk(tt.chunk)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.chunk.Id, decoded.Id)
			assert.Equal(t, tt.chunk.Content, decoded.Content)
			if len(tt.chunk.Metadata) == 0 {
				assert.Empty(t, decoded.Metadata)
			} else {
				assert.Equal(t, tt.chunk.Metadata, decoded.Metadata)
			}
			if len(tt.chunk.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.chunk.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalChunk_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalChunk(tt.data)
			assert.Error(t, err)
		})
	}
}
