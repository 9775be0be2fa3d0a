package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/embedding"
	"github.com/poiesic/recall/storage"
)

// Pipeline orchestrates document ingestion.
//
// Chunks are written synchronously so lexical search sees them immediately;
// embedding runs on a worker pool and rewrites each chunk with its vector
// once available.
type Pipeline struct {
	store   storage.Store
	cache   *embedding.Cache
	chunker *Chunker
	pool    *ants.Pool
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunking sets the chunk window size and overlap in runes.
// Defaults are DefaultChunkSize and DefaultChunkOverlap.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		chunker, err := NewChunker(size, overlap)
		if err != nil {
			return err
		}
		p.chunker = chunker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(store storage.Store, cache *embedding.Cache, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if cache == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	chunker, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	if err != nil {
		pool.Release()
		return nil, err
	}

	p := &Pipeline{
		store:   store,
		cache:   cache,
		chunker: chunker,
		pool:    pool,
		logger:  slog.Default().With("component", "ingest"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestDocument splits content into chunks, stores them, and schedules
// embedding. Metadata is attached to every chunk of the document. Returns
// the number of chunks written.
func (p *Pipeline) IngestDocument(ctx context.Context, content string, metadata map[string]string) (int, error) {
	pieces := p.chunker.Split(content)
	if len(pieces) == 0 {
		return 0, nil
	}

	chunks := make([]*core.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &core.Chunk{
			Id:       core.IDFromContent(piece),
			Content:  piece,
			Metadata: metadata,
		}
	}

	if err := p.store.AddChunks(ctx, chunks...); err != nil {
		return 0, err
	}
	p.logger.Info("stored document chunks", "chunks", len(chunks))

	for _, chunk := range chunks {
		chunk := chunk
		p.wg.Add(1)
		if err := p.pool.Submit(func() {
			defer p.wg.Done()
			p.embedChunk(context.Background(), chunk)
		}); err != nil {
			p.wg.Done()
			p.logger.Error("error scheduling embedding", "err", err, "chunk", chunk.Id)
		}
	}

	return len(chunks), nil
}

// embedChunk embeds a chunk's content and rewrites it with the vector.
func (p *Pipeline) embedChunk(ctx context.Context, chunk *core.Chunk) {
	vector, err := p.cache.Embed(ctx, chunk.Content)
	if err != nil {
		p.logger.Error("error embedding chunk", "err", err, "chunk", chunk.Id)
		return
	}

	chunk.Vector = vector
	if err := p.store.AddChunks(ctx, chunk); err != nil {
		p.logger.Error("error storing chunk vector", "err", err, "chunk", chunk.Id)
	}
}

// Wait blocks until all scheduled embedding work has finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Release waits for in-flight work and frees the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.wg.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
