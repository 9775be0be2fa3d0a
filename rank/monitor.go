package rank

import "github.com/poiesic/recall/core"

// RetrievalMonitor provides hooks to observe the retrieval pipeline.
// Implement this interface to track intermediate stages during a request.
type RetrievalMonitor interface {
	Start(rawQuery string)
	AfterResolve(resolvedQuery string)
	AfterAnalyze(profile *core.QueryProfile)
	AfterLexicalSearch(candidates []*core.Candidate)
	AfterSemanticSearch(candidates []*core.Candidate)
	AfterFusion(results []*core.FusedResult)
	Finish(set *core.ContextSet)
}

// NoopMonitor is a no-op implementation of RetrievalMonitor.
type NoopMonitor struct{}

var _ RetrievalMonitor = (*NoopMonitor)(nil)

func (n *NoopMonitor) Start(_ string)                          {}
func (n *NoopMonitor) AfterResolve(_ string)                   {}
func (n *NoopMonitor) AfterAnalyze(_ *core.QueryProfile)       {}
func (n *NoopMonitor) AfterLexicalSearch(_ []*core.Candidate)  {}
func (n *NoopMonitor) AfterSemanticSearch(_ []*core.Candidate) {}
func (n *NoopMonitor) AfterFusion(_ []*core.FusedResult)       {}
func (n *NoopMonitor) Finish(_ *core.ContextSet)               {}
