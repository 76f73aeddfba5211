// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package typedoc defines the public interface for go-typedoc, a
// generator of Markdown API reference pages from type metadata, C#
// sources, and Go packages.
package typedoc

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/project"
)

// ErrInvalidConfig is returned by New for unusable configurations.
var ErrInvalidConfig = errors.New("invalid config")

// Artifact is one documentation input: a manifest file, a C# source
// directory, or a Go module directory.
type Artifact = project.Artifact

// Config configures a Generator.
type Config struct {
	Output         string     // Output directory (required)
	Artifacts      []Artifact // Inputs (at least one)
	Index          string     // Index page file stem (default "index")
	NamespaceMatch string     // Regular expression or glob over namespaces
	ExternalDocs   string     // Root URL for framework type links
	Concurrency    int        // Artifact workers (default 4)
	Commit         bool       // Commit written pages to the enclosing git repository
	IndexDB        string     // SQLite symbol index path (empty = none)
	Logger         *zap.Logger
}

// Result holds the outcome of Generate.
type Result struct {
	Written    []string // Pages written, relative to Output
	Pages      int      // Pages rendered
	Registered int      // Registry entries, the index placeholder included
	Failed     []string // Artifacts that could not be loaded, with the reason
	Committed  bool
}

// CheckResult holds the outcome of Check.
type CheckResult struct {
	Missing []string
	Stale   []string
	Orphans []string
	Diffs   map[string]string // Line diff per stale page
	Failed  []string
}

// UpToDate reports whether the output matches what Generate would write.
func (r *CheckResult) UpToDate() bool {
	return len(r.Missing) == 0 && len(r.Stale) == 0 && len(r.Orphans) == 0
}

// Generator builds documentation.
type Generator interface {
	// Generate renders every page and writes the ones that changed.
	Generate(ctx context.Context) (*Result, error)
	// Check renders every page and compares it with the output directory
	// without writing.
	Check(ctx context.Context) (*CheckResult, error)
}
