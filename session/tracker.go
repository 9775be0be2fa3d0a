package session

import "strings"

// DefaultWindowBound is the default number of prior resolved queries retained.
const DefaultWindowBound = 5

// defaultLeadWords mark a query as referential when it begins with one of
// them. Longer phrases are listed first so they win over their prefixes.
var defaultLeadWords = []string{
	"what about",
	"how about",
	"and what",
	"also",
	"and",
}

// Tracker maintains an ordered, bounded window of prior resolved queries
// for a single session. The window is the only mutable state in the
// retrieval core; it is never shared across sessions.
type Tracker struct {
	window    []string
	bound     int
	leadWords []string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBound sets the window bound. Values below 1 fall back to the default.
func WithBound(bound int) Option {
	return func(t *Tracker) {
		if bound < 1 {
			bound = DefaultWindowBound
		}
		t.bound = bound
	}
}

// WithLeadWords replaces the referential lead words used by Resolve.
// Matching is case-insensitive and longest-match-first, so callers should
// list longer phrases before their prefixes.
func WithLeadWords(words []string) Option {
	return func(t *Tracker) {
		if len(words) > 0 {
			t.leadWords = words
		}
	}
}

// NewTracker creates a tracker with an empty window.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		bound:     DefaultWindowBound,
		leadWords: defaultLeadWords,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resolve rewrites a referential query into a self-contained one.
//
// If the text begins with a referential lead word and a prior turn exists,
// the most recent prior resolved query is prepended so downstream analysis
// and search see the full intent. Otherwise the text passes through
// unchanged. Resolve does not record the turn; call Record once the query
// has been processed.
func (t *Tracker) Resolve(rawText string) string {
	if len(t.window) == 0 {
		return rawText
	}

	trimmed := strings.TrimSpace(rawText)
	lowered := strings.ToLower(trimmed)
	for _, lead := range t.leadWords {
		if !strings.HasPrefix(lowered, lead) {
			continue
		}
		// The lead word must end at a word boundary ("and" should not
		// match "android").
		rest := lowered[len(lead):]
		if rest != "" && !strings.HasPrefix(rest, " ") {
			continue
		}
		previous := t.window[len(t.window)-1]
		return previous + " " + trimmed
	}

	return rawText
}

// Record appends a resolved query to the window, evicting the oldest entry
// once the bound is exceeded (FIFO).
func (t *Tracker) Record(resolvedText string) {
	t.window = append(t.window, resolvedText)
	if len(t.window) > t.bound {
		t.window = t.window[len(t.window)-t.bound:]
	}
}

// Window returns a copy of the current window, oldest first.
func (t *Tracker) Window() []string {
	out := make([]string, len(t.window))
	copy(out, t.window)
	return out
}

// Len returns the number of retained turns.
func (t *Tracker) Len() int {
	return len(t.window)
}

// Reset empties the window. Called on explicit session end.
func (t *Tracker) Reset() {
	t.window = t.window[:0]
}
