package recall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/rank"
	"github.com/poiesic/recall/session"
)

// searchDepthMultiplier controls how many candidates each search method
// returns relative to the requested result count. Fetching deeper than the
// final cut gives fusion room to promote chunks that rank mid-list in both
// methods.
const searchDepthMultiplier = 2

// Session is a conversation-scoped retrieval handle. It carries the context
// tracker that resolves referential follow-up queries, so each conversation
// needs its own Session. A Session is not safe for concurrent use.
type Session struct {
	engine  *Engine
	tracker *session.Tracker
	logger  *slog.Logger
}

// Retrieve runs the full retrieval pipeline for a query and returns a
// curated context set.
//
// The raw query is resolved against conversation context, classified to pick
// fusion weights, searched lexically and semantically in parallel, fused
// with RRF, and curated. An empty result is not an error: the returned set
// has no results and zero confidence.
func (s *Session) Retrieve(ctx context.Context, rawQuery string, limit int) (*core.ContextSet, error) {
	return s.RetrieveWithMonitor(ctx, rawQuery, limit, nil)
}

// RetrieveWithMonitor is Retrieve with stage callbacks for observability.
func (s *Session) RetrieveWithMonitor(ctx context.Context, rawQuery string, limit int, monitor rank.RetrievalMonitor) (*core.ContextSet, error) {
	if monitor == nil {
		monitor = &rank.NoopMonitor{}
	}

	monitor.Start(rawQuery)

	resolved := s.tracker.Resolve(rawQuery)
	monitor.AfterResolve(resolved)

	profile, err := s.engine.analyzer.Analyze(rawQuery, resolved, limit)
	if err != nil {
		return nil, err
	}
	monitor.AfterAnalyze(profile)

	depth := profile.RequestedCount * searchDepthMultiplier

	var lexical, semantic []*core.Candidate
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		candidates, err := s.engine.store.SearchLexical(groupCtx, profile.ResolvedText, depth)
		if err != nil {
			return fmt.Errorf("%w: lexical: %w", core.ErrSearchProvider, err)
		}
		lexical = candidates
		return nil
	})

	group.Go(func() error {
		vector, err := s.engine.cache.Embed(groupCtx, profile.ResolvedText)
		if err != nil {
			return err
		}
		candidates, err := s.engine.store.SearchVector(groupCtx, vector, depth)
		if err != nil {
			return fmt.Errorf("%w: semantic: %w", core.ErrSearchProvider, err)
		}
		semantic = candidates
		return nil
	})

	if err := group.Wait(); err != nil {
		s.logger.Error("retrieval failed", "query", rawQuery, "err", err)
		return nil, err
	}
	monitor.AfterLexicalSearch(lexical)
	monitor.AfterSemanticSearch(semantic)

	fused, err := rank.Fuse(lexical, semantic, rank.FuseOptions{
		LexicalWeight:  profile.LexicalWeight,
		SemanticWeight: profile.SemanticWeight,
		Limit:          profile.RequestedCount,
	})
	if err != nil {
		if errors.Is(err, core.ErrEmptyCandidateSet) {
			s.tracker.Record(profile.ResolvedText)
			set := &core.ContextSet{Confidence: 0}
			monitor.Finish(set)
			return set, nil
		}
		return nil, err
	}
	monitor.AfterFusion(fused)

	set := rank.Curate(fused, profile, rank.DefaultCurateOptions())

	s.tracker.Record(profile.ResolvedText)
	monitor.Finish(set)

	s.logger.Debug("retrieval complete",
		"query", rawQuery,
		"class", profile.Class.String(),
		"results", len(set.Results),
		"confidence", set.Confidence)

	return set, nil
}

// Ask retrieves context for the query and generates an answer from it.
// The generation prompt is selected by the context set's confidence tier.
// Returns the answer together with the context set it was grounded on.
func (s *Session) Ask(ctx context.Context, rawQuery string, limit int) (string, *core.ContextSet, error) {
	set, err := s.Retrieve(ctx, rawQuery, limit)
	if err != nil {
		return "", nil, err
	}

	passages := make([]string, len(set.Results))
	for i, result := range set.Results {
		passages[i] = result.Content
	}

	tier := ai.TierForConfidence(set.Confidence, s.engine.config.HighConfidence, s.engine.config.MediumConfidence)
	answer, err := s.engine.provider.Generator().GenerateAnswer(ctx, rawQuery, passages, tier)
	if err != nil {
		return "", set, err
	}
	return answer, set, nil
}

// History returns the resolved queries currently in the context window,
// oldest first.
func (s *Session) History() []string {
	return s.tracker.Window()
}

// Reset clears the session's conversation context.
func (s *Session) Reset() {
	s.tracker.Reset()
}
