// Package index owns the cached corpus of extracted declarations for one
// source root and answers structured queries over it.
package index

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"declscope/internal/tsparse"
	"declscope/internal/walker"
)

// Engine extracts and caches the declaration corpus for a source root. The
// corpus is built lazily on first use and is immutable once built; Rebuild
// constructs a fresh corpus and swaps the reference atomically, so concurrent
// readers always observe either the old or the new complete index.
type Engine struct {
	root      string
	ignore    []string
	extractor *tsparse.Extractor
	log       zerolog.Logger
	progress  func(done, total int)

	mu  sync.Mutex // serializes builds
	idx atomic.Pointer[corpus]
}

// corpus is one complete extraction pass. It is never mutated after
// construction.
type corpus struct {
	decls []tsparse.Declaration
	hier  *hierarchyGraph
}

// Option configures an Engine.
type Option func(*Engine)

// WithIgnorePatterns sets additional glob patterns excluded from the scan.
func WithIgnorePatterns(patterns []string) Option {
	return func(e *Engine) { e.ignore = patterns }
}

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithProgress sets a callback invoked after each parsed file.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Engine) { e.progress = fn }
}

// New creates an engine for the given source root. The caller is responsible
// for ensuring the root exists; a missing root is a configuration error
// surfaced before the engine is constructed.
func New(root string, opts ...Option) *Engine {
	e := &Engine{
		root:      root,
		extractor: tsparse.NewExtractor(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractAll returns the full corpus, building it on first call. Subsequent
// calls return the cached result without re-scanning.
func (e *Engine) ExtractAll(ctx context.Context) ([]tsparse.Declaration, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return c.decls, nil
}

// Rebuild runs a fresh extraction pass and atomically replaces the cached
// corpus. It returns the new declaration count.
func (e *Engine) Rebuild(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.build(ctx)
	if err != nil {
		return 0, err
	}
	e.idx.Store(c)
	return len(c.decls), nil
}

// ensure returns the cached corpus, building it if no build has happened yet.
func (e *Engine) ensure(ctx context.Context) (*corpus, error) {
	if c := e.idx.Load(); c != nil {
		return c, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if c := e.idx.Load(); c != nil {
		return c, nil
	}

	c, err := e.build(ctx)
	if err != nil {
		return nil, err
	}
	e.idx.Store(c)
	return c, nil
}

// build runs one sequential extraction pass over the source tree. Files that
// fail to read or parse contribute zero declarations and never abort the
// build.
func (e *Engine) build(ctx context.Context) (*corpus, error) {
	start := time.Now()

	w, err := walker.New(e.root, e.ignore)
	if err != nil {
		return nil, err
	}
	files, err := w.Collect()
	if err != nil {
		return nil, err
	}

	var decls []tsparse.Declaration
	for i, rel := range files {
		fileDecls, err := e.extractor.ExtractFile(ctx, filepath.Join(e.root, filepath.FromSlash(rel)), rel)
		if err != nil {
			e.log.Warn().Err(err).Str("file", rel).Msg("skipping unreadable file")
		} else {
			decls = append(decls, fileDecls...)
		}
		if e.progress != nil {
			e.progress(i+1, len(files))
		}
	}

	c := &corpus{
		decls: decls,
		hier:  buildHierarchy(decls),
	}

	e.log.Info().
		Int("files", len(files)).
		Int("declarations", len(decls)).
		Dur("elapsed", time.Since(start)).
		Msg("index built")
	return c, nil
}
