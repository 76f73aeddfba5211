// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docgen runs one documentation build. Artifacts are loaded and
// registered concurrently into a registry created for the run; once every
// worker has finished, pages are rendered for the registered types and
// the index.
package docgen

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/internal/logging"
	"github.com/petar-djukic/go-typedoc/internal/project"
	"github.com/petar-djukic/go-typedoc/internal/render"
	"github.com/petar-djukic/go-typedoc/internal/symbol"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

const defaultConcurrency = 4

// ArtifactError reports an artifact that could not be loaded or
// registered. The rest of the run continues without it.
type ArtifactError struct {
	Path string
	Err  error
}

func (e ArtifactError) Error() string { return e.Path + ": " + e.Err.Error() }

// RunResult holds the outcome of a Runner.Run invocation.
type RunResult struct {
	Pages      []render.Page
	Symbols    []*symbol.TypeSymbol // Symbols that got a page, by path.
	Registered int
	Failed     []ArtifactError
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Loader         Loader // Nil means the source loader.
	Sources        []project.Artifact
	IndexName      string
	NamespaceMatch string
	ExternalDocs   string
	Concurrency    int
	Logger         *zap.Logger
}

// Runner builds documentation pages from artifacts.
type Runner struct {
	deps   Deps
	loader Loader
	logger *zap.Logger
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Concurrency <= 0 {
		deps.Concurrency = defaultConcurrency
	}
	if deps.IndexName == "" {
		deps.IndexName = render.IndexIdentifier
	}
	r := &Runner{deps: deps, loader: deps.Loader, logger: logging.OrNop(deps.Logger)}
	if r.loader == nil {
		r.loader = NewSourceLoader(r.logger, deps.Concurrency)
	}
	return r
}

// Run loads every source, registers its types, and renders the pages.
// Pages are returned, not written.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}
	match, err := NamespaceFilter(r.deps.NamespaceMatch)
	if err != nil {
		return result, err
	}

	// Step 1: Reserve the index page so type pages can link back to it.
	reg := symbol.NewRegistry(
		symbol.WithLogger(r.logger),
		symbol.WithExternalDocsBase(r.deps.ExternalDocs),
	)
	reg.RegisterPlaceholder(render.IndexIdentifier, "", r.deps.IndexName)

	// Step 2: Load and register artifacts. Wait is the barrier between
	// registration and rendering.
	docs, err := r.register(ctx, reg, result)
	if err != nil {
		return result, err
	}
	result.Registered = reg.Len()

	// Step 3: Select the types that get a page.
	var selected []*symbol.TypeSymbol
	for _, s := range reg.Symbols() {
		if !s.IsWellDefined() {
			continue
		}
		d := s.Descriptor()
		if d.IsExternal() || d.IsNestedPrivate() || !match(symbol.NamespaceOf(d)) {
			continue
		}
		selected = append(selected, s)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Path() < selected[j].Path() })
	result.Symbols = selected

	// Step 4: Render type pages, then the index.
	rnd := render.New(reg)
	pages, err := r.renderTypes(ctx, rnd, selected, docs)
	if err != nil {
		return result, err
	}
	index, err := rnd.IndexPage(symbol.BuildTable(selected), nil)
	if err != nil {
		return result, errors.Wrap(err, "rendering index")
	}
	result.Pages = append(pages, index)

	r.logger.Info("documentation rendered",
		zap.Int("registered", result.Registered),
		zap.Int("pages", len(result.Pages)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// register loads the sources on a bounded worker group. A source that
// fails is recorded in result and skipped. It returns the comment source
// of each artifact by name.
func (r *Runner) register(ctx context.Context, reg *symbol.Registry, result *RunResult) (map[string]types.CommentSource, error) {
	var mu sync.Mutex
	docs := make(map[string]types.CommentSource)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.deps.Concurrency)
	for _, src := range r.deps.Sources {
		g.Go(func() error {
			a, err := r.loader.Load(gctx, src)
			var added int
			if err == nil {
				added, err = reg.Register(a.Types)
			}
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				r.logger.Error("artifact failed", zap.String("path", src.Path), zap.Error(err))
				mu.Lock()
				result.Failed = append(result.Failed, ArtifactError{Path: src.Path, Err: err})
				mu.Unlock()
				return nil
			}
			r.logger.Info("artifact registered",
				zap.String("artifact", a.Name),
				zap.String("path", src.Path),
				zap.Int("types", added),
			)
			if a.Comments != nil {
				mu.Lock()
				if prev, ok := docs[a.Name]; ok {
					docs[a.Name] = comments.Chain{prev, a.Comments}
				} else {
					docs[a.Name] = a.Comments
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].Path < result.Failed[j].Path })
	return docs, nil
}

func (r *Runner) renderTypes(ctx context.Context, rnd *render.Renderer, selected []*symbol.TypeSymbol, docs map[string]types.CommentSource) ([]render.Page, error) {
	pages := make([]render.Page, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.deps.Concurrency)
	for i, s := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, err := rnd.TypePage(s, docs[s.Descriptor().Artifact()])
			if err != nil {
				return errors.Wrapf(err, "rendering %s", s.Identifier())
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
