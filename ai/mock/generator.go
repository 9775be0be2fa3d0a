package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/recall/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default canned behavior.
	GenerateAnswerFunc func(ctx context.Context, query string, passages []string, tier ai.ConfidenceTier) (string, error)

	mu        sync.Mutex
	callCount int
	lastTier  ai.ConfidenceTier
}

// NewMockGenerator creates a mock generator with default canned behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateAnswer returns a deterministic canned answer describing its inputs.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, query string, passages []string, tier ai.ConfidenceTier) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastTier = tier
	m.mu.Unlock()

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, query, passages, tier)
	}

	return fmt.Sprintf("answer(%s tier, %d passages): %s", tier, len(passages), query), nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastTier returns the tier passed to the most recent call.
func (m *MockGenerator) LastTier() ai.ConfidenceTier {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTier
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastTier = 0
	m.GenerateAnswerFunc = nil
}
