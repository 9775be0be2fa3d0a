package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_PassthroughWithoutHistory(t *testing.T) {
	tracker := NewTracker()

	resolved := tracker.Resolve("and what about pricing")
	assert.Equal(t, "and what about pricing", resolved)
}

func TestResolve_ReferentialQuery(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("kubernetes autoscaling limits")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "what about",
			in:   "what about memory?",
			want: "kubernetes autoscaling limits what about memory?",
		},
		{
			name: "and",
			in:   "and the defaults",
			want: "kubernetes autoscaling limits and the defaults",
		},
		{
			name: "also",
			in:   "also for GPUs",
			want: "kubernetes autoscaling limits also for GPUs",
		},
		{
			name: "case insensitive",
			in:   "What about memory?",
			want: "kubernetes autoscaling limits What about memory?",
		},
		{
			name: "non-referential passes through",
			in:   "tell me about storage classes",
			want: "tell me about storage classes",
		},
		{
			name: "lead word must end at word boundary",
			in:   "android permissions",
			want: "android permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracker.Resolve(tt.in))
		})
	}
}

func TestResolve_UsesMostRecentTurn(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("first topic")
	tracker.Record("second topic")

	resolved := tracker.Resolve("and details")
	assert.Equal(t, "second topic and details", resolved)
}

func TestRecord_WindowBoundFIFO(t *testing.T) {
	tracker := NewTracker(WithBound(3))

	for i := 1; i <= 5; i++ {
		tracker.Record(fmt.Sprintf("query %d", i))
		assert.LessOrEqual(t, tracker.Len(), 3, "window must never exceed its bound")
	}

	assert.Equal(t, []string{"query 3", "query 4", "query 5"}, tracker.Window())
}

func TestRecord_DefaultBound(t *testing.T) {
	tracker := NewTracker()

	for i := 0; i < 20; i++ {
		tracker.Record("query")
	}
	assert.Equal(t, DefaultWindowBound, tracker.Len())
}

func TestReset(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("something")
	tracker.Reset()

	assert.Zero(t, tracker.Len())
	assert.Equal(t, "and more", tracker.Resolve("and more"), "reset tracker must not resolve references")
}

func TestWithLeadWords(t *testing.T) {
	tracker := NewTracker(WithLeadWords([]string{"e sobre"}))
	tracker.Record("planos de preço")

	assert.Equal(t, "planos de preço e sobre o suporte", tracker.Resolve("e sobre o suporte"))
	assert.Equal(t, "and this", tracker.Resolve("and this"), "default lead words replaced")
}
