package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestQueryClass_String(t *testing.T) {
	tests := []struct {
		class QueryClass
		want  string
	}{
		{ClassExactTerm, "exact-term"},
		{ClassConceptual, "conceptual"},
		{ClassKeyword, "keyword"},
		{ClassBalanced, "balanced"},
		{QueryClass(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.class.String(); got != tt.want {
				t.Errorf("QueryClass.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextSet_Empty(t *testing.T) {
	var nilSet *ContextSet
	if !nilSet.Empty() {
		t.Error("nil ContextSet should be empty")
	}

	empty := &ContextSet{}
	if !empty.Empty() {
		t.Error("ContextSet with no results should be empty")
	}

	populated := &ContextSet{Results: []*FusedResult{{ChunkId: 1}}}
	if populated.Empty() {
		t.Error("ContextSet with results should not be empty")
	}
}
