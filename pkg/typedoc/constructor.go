// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package typedoc

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/check"
	"github.com/petar-djukic/go-typedoc/internal/docgen"
	"github.com/petar-djukic/go-typedoc/internal/git"
	"github.com/petar-djukic/go-typedoc/internal/logging"
	"github.com/petar-djukic/go-typedoc/internal/project"
	"github.com/petar-djukic/go-typedoc/internal/render"
	"github.com/petar-djukic/go-typedoc/internal/store"
)

const defaultConcurrency = 4

// New validates the config and returns a ready-to-use Generator. Nothing
// is loaded until Generate or Check runs.
func New(cfg Config) (Generator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid config"), ErrInvalidConfig)
	}
	applyDefaults(&cfg)

	runner := docgen.NewRunner(docgen.Deps{
		Sources:        cfg.Artifacts,
		IndexName:      cfg.Index,
		NamespaceMatch: cfg.NamespaceMatch,
		ExternalDocs:   cfg.ExternalDocs,
		Concurrency:    cfg.Concurrency,
		Logger:         cfg.Logger,
	})
	return &generator{cfg: cfg, runner: runner}, nil
}

// LoadProject reads a project file into a Config.
func LoadProject(path string) (Config, error) {
	p, err := project.Load(path)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Output:         p.Output,
		Artifacts:      p.Artifacts,
		Index:          p.Index,
		NamespaceMatch: p.NamespaceMatch,
		ExternalDocs:   p.ExternalDocs,
	}, nil
}

// generator adapts docgen.Runner to the public Generator interface. The
// runner is reused so watch mode keeps its parse cache.
type generator struct {
	cfg    Config
	runner *docgen.Runner
}

func (g *generator) Generate(ctx context.Context) (*Result, error) {
	rr, err := g.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Pages:      len(rr.Pages),
		Registered: rr.Registered,
		Failed:     failures(rr.Failed),
	}

	written, err := docgen.WritePages(g.cfg.Output, rr.Pages)
	result.Written = written
	if err != nil {
		return result, err
	}

	if g.cfg.IndexDB != "" {
		if err := saveIndex(ctx, g.cfg.IndexDB, rr); err != nil {
			return result, err
		}
	}

	if g.cfg.Commit && len(written) > 0 {
		repo, err := git.Open(git.Config{WorkDir: g.cfg.Output})
		if err != nil {
			return result, err
		}
		summary := fmt.Sprintf("Regenerate %d of %d pages", len(written), len(rr.Pages))
		if result.Committed, err = repo.Commit(written, summary); err != nil {
			return result, err
		}
	}

	g.cfg.Logger.Info("pages written",
		zap.String("output", g.cfg.Output),
		zap.Int("written", len(written)),
		zap.Int("unchanged", len(rr.Pages)-len(written)),
	)
	return result, nil
}

func (g *generator) Check(ctx context.Context) (*CheckResult, error) {
	rr, err := g.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	report, err := check.Compare(g.cfg.Output, rr.Pages)
	if err != nil {
		return nil, err
	}
	result := &CheckResult{Diffs: make(map[string]string), Failed: failures(rr.Failed)}
	for _, f := range report.Findings {
		switch f.Status {
		case check.Missing:
			result.Missing = append(result.Missing, f.Path)
		case check.Stale:
			result.Stale = append(result.Stale, f.Path)
			result.Diffs[f.Path] = f.Diff
		case check.Orphan:
			result.Orphans = append(result.Orphans, f.Path)
		}
	}
	return result, nil
}

func saveIndex(ctx context.Context, path string, rr *docgen.RunResult) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Save(ctx, rr.Symbols)
}

func failures(errs []docgen.ArtifactError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.Output == "" {
		return errors.New("Output is required")
	}
	if info, err := os.Stat(cfg.Output); err == nil && !info.IsDir() {
		return errors.Newf("Output %q is not a directory", cfg.Output)
	}
	if len(cfg.Artifacts) == 0 {
		return errors.New("at least one artifact is required")
	}
	for _, a := range cfg.Artifacts {
		if _, err := os.Stat(a.Path); err != nil {
			return errors.Newf("artifact %q does not exist", a.Path)
		}
		if a.Docs != "" {
			if _, err := os.Stat(a.Docs); err != nil {
				return errors.Newf("documentation file %q does not exist", a.Docs)
			}
		}
	}
	if _, err := docgen.NamespaceFilter(cfg.NamespaceMatch); err != nil {
		return err
	}
	if cfg.Concurrency < 0 {
		return errors.New("Concurrency must not be negative")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Index == "" {
		cfg.Index = render.IndexIdentifier
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
	cfg.Logger = logging.OrNop(cfg.Logger)
}
