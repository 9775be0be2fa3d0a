package query

import (
	"strings"

	"github.com/poiesic/recall/core"
)

// Defaults for the analyzer's tunables. Like the fusion and curation
// constants these are empirically chosen starting points, not derived values.
const (
	DefaultMaxQueryLength      = 1024
	DefaultShortQueryThreshold = 3
	DefaultRequestedCount      = 5
)

// Weights is a pair of multiplicative RRF factors. They are not
// probabilities and need not sum to any fixed total.
type Weights struct {
	Lexical  float64
	Semantic float64
}

// Per-class weight defaults.
var (
	exactTermWeights      = Weights{Lexical: 2.0, Semantic: 0.5}
	conceptualWeights     = Weights{Lexical: 0.6, Semantic: 1.6}
	conceptualLeadWeights = Weights{Lexical: 0.6, Semantic: 1.8}
	keywordWeights        = Weights{Lexical: 1.8, Semantic: 0.5}
	balancedWeights       = Weights{Lexical: 1.0, Semantic: 1.2}
)

// defaultQuestionLeads escalate a conceptual query's semantic weight when
// the question opens with one of them.
var defaultQuestionLeads = []string{"how", "why", "what", "when", "where", "who", "which"}

// Analyzer derives a QueryProfile from resolved query text.
// It is a pure function of its inputs and safe for concurrent use.
type Analyzer struct {
	maxQueryLength      int
	shortQueryThreshold int
	questionLeads       []string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxQueryLength sets the maximum accepted query length in runes.
// Zero disables the check.
func WithMaxQueryLength(max int) Option {
	return func(a *Analyzer) {
		a.maxQueryLength = max
	}
}

// WithShortQueryThreshold sets the token count at or below which an
// unpunctuated query is classified as keyword.
func WithShortQueryThreshold(threshold int) Option {
	return func(a *Analyzer) {
		if threshold >= 1 {
			a.shortQueryThreshold = threshold
		}
	}
}

// WithQuestionLeads replaces the natural-question lead words that escalate
// a conceptual query's semantic weight.
func WithQuestionLeads(leads []string) Option {
	return func(a *Analyzer) {
		a.questionLeads = leads
	}
}

// NewAnalyzer creates an analyzer with default tunables.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxQueryLength:      DefaultMaxQueryLength,
		shortQueryThreshold: DefaultShortQueryThreshold,
		questionLeads:       defaultQuestionLeads,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates the raw query and produces a QueryProfile for the
// resolved text. Classification rules apply in order, first match wins:
//
//  1. quoted substring present        -> exact-term
//  2. ends with a question mark       -> conceptual (escalated on lead word)
//  3. token count <= short threshold  -> keyword
//  4. otherwise                       -> balanced
//
// requestedCount <= 0 falls back to DefaultRequestedCount. Fails with a
// core.ErrInvalidQuery-wrapped error on empty or over-long input, before
// any external call is made.
func (a *Analyzer) Analyze(rawText, resolvedText string, requestedCount int) (*core.QueryProfile, error) {
	if err := core.ValidateQueryText(rawText, a.maxQueryLength); err != nil {
		return nil, err
	}
	if resolvedText == "" {
		resolvedText = rawText
	}
	if requestedCount <= 0 {
		requestedCount = DefaultRequestedCount
	}

	class, weights := a.classify(resolvedText)

	return &core.QueryProfile{
		RawText:        rawText,
		ResolvedText:   resolvedText,
		Class:          class,
		LexicalWeight:  weights.Lexical,
		SemanticWeight: weights.Semantic,
		RequestedCount: requestedCount,
	}, nil
}

func (a *Analyzer) classify(text string) (core.QueryClass, Weights) {
	trimmed := strings.TrimSpace(text)

	if hasQuotedSubstring(trimmed) {
		return core.ClassExactTerm, exactTermWeights
	}

	if strings.HasSuffix(trimmed, "?") {
		if a.hasQuestionLead(trimmed) {
			return core.ClassConceptual, conceptualLeadWeights
		}
		return core.ClassConceptual, conceptualWeights
	}

	if len(strings.Fields(trimmed)) <= a.shortQueryThreshold {
		return core.ClassKeyword, keywordWeights
	}

	return core.ClassBalanced, balancedWeights
}

// hasQuotedSubstring reports whether the text contains at least one
// non-empty double-quoted span.
func hasQuotedSubstring(text string) bool {
	first := strings.IndexByte(text, '"')
	if first < 0 {
		return false
	}
	second := strings.IndexByte(text[first+1:], '"')
	return second > 0 // at least one character between the quotes
}

func (a *Analyzer) hasQuestionLead(text string) bool {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	for _, lead := range a.questionLeads {
		if fields[0] == lead {
			return true
		}
	}
	return false
}
