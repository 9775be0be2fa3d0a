// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package recall

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/openai"
	"github.com/poiesic/recall/embedding"
	"github.com/poiesic/recall/ingest"
	"github.com/poiesic/recall/query"
	"github.com/poiesic/recall/session"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
)

// Engine bundles the store, the AI provider, and the query analyzer behind
// one handle. Open it once and create a Session per conversation.
type Engine struct {
	store    storage.Store
	provider ai.AIProvider
	cache    *embedding.Cache
	analyzer *query.Analyzer
	config   *ai.Config
	logger   *slog.Logger

	ownsProvider bool
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig      *ai.Config
	cacheCapacity int
	minSimilarity float32
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithCacheCapacity sets the embedding cache capacity.
// Default is embedding.DefaultCapacity.
func WithCacheCapacity(capacity int) EngineOption {
	return func(o *engineOptions) {
		o.cacheCapacity = capacity
	}
}

// WithMinSimilarity sets the vector search similarity floor.
// Default is 0 (no floor).
func WithMinSimilarity(min float32) EngineOption {
	return func(o *engineOptions) {
		o.minSimilarity = min
	}
}

// Open creates an engine backed by a BadgerDB store at filePath and an
// OpenAI-compatible provider.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	options := applyOptions(opts)

	store, err := badger.NewStore(filePath, badger.WithMinSimilarity(options.minSimilarity))
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	engine, err := newEngine(store, provider, options)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}
	engine.ownsProvider = true
	return engine, nil
}

// NewEngine creates an engine from an existing store and provider, for
// embedding into larger applications and for testing. The caller retains
// ownership of the store and provider lifecycle alongside the engine.
func NewEngine(store storage.Store, provider ai.AIProvider, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("AI provider is required")
	}
	return newEngine(store, provider, applyOptions(opts))
}

func applyOptions(opts []EngineOption) *engineOptions {
	options := &engineOptions{
		aiConfig:      ai.DefaultConfig(),
		cacheCapacity: embedding.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func newEngine(store storage.Store, provider ai.AIProvider, options *engineOptions) (*Engine, error) {
	cache, err := embedding.NewCache(provider.Embedder(), embedding.WithCapacity(options.cacheCapacity))
	if err != nil {
		return nil, err
	}

	return &Engine{
		store:    store,
		provider: provider,
		cache:    cache,
		analyzer: query.NewAnalyzer(),
		config:   options.aiConfig,
		logger:   slog.Default().With("component", "engine"),
	}, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if e.ownsProvider {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// Store exposes the chunk store for direct access.
func (e *Engine) Store() storage.Store {
	return e.store
}

// Cache exposes the shared embedding cache.
func (e *Engine) Cache() *embedding.Cache {
	return e.cache
}

// NewIngestionPipeline creates a pipeline writing into this engine's store
// and embedding through its shared cache.
func (e *Engine) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(e.store, e.cache, opts...)
}

// NewSession starts a conversation-scoped retrieval session.
// Options configure the session's context tracker.
func (e *Engine) NewSession(opts ...session.Option) *Session {
	return &Session{
		engine:  e,
		tracker: session.NewTracker(opts...),
		logger:  slog.Default().With("component", "session"),
	}
}
