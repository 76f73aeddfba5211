// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gotypes builds type descriptors from Go packages. Packages are
// loaded with go/packages; every declared named type becomes a type spec
// that the metadata Builder resolves like any other source.
package gotypes

import (
	"context"
	"go/doc"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/petar-djukic/go-typedoc/internal/metadata"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// ErrNoPackages is returned when the patterns match no loadable package.
var ErrNoPackages = errors.New("no Go packages loaded")

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedTypes |
	packages.NeedSyntax | packages.NeedTypesInfo

// Options configures Load.
type Options struct {
	// Artifact names the result. Empty means the directory name.
	Artifact string
	// Patterns are package patterns relative to the directory. Empty
	// means "./...".
	Patterns []string
	// Unexported includes unexported types and members.
	Unexported bool
	Logger     *zap.Logger
}

var nsReplacer = strings.NewReplacer("/", ".", "-", "_", "~", "_")

// Namespace returns the namespace of a package import path.
func Namespace(pkgPath string) string {
	return nsReplacer.Replace(pkgPath)
}

// Load loads the Go packages under dir and builds their types into one
// artifact. Packages with errors are skipped with a warning.
func Load(ctx context.Context, dir string, opts Options) (*types.Artifact, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := opts.Artifact
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, errors.Wrap(err, "resolving directory")
		}
		name = filepath.Base(abs)
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{Mode: loadMode, Dir: dir, Context: ctx}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading packages in %s", dir)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	var loaded []*packages.Package
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			for _, e := range p.Errors {
				logger.Warn("skipping package", zap.String("package", p.PkgPath), zap.String("error", e.Error()))
			}
			continue
		}
		if p.Types == nil || len(p.Syntax) == 0 {
			continue
		}
		loaded = append(loaded, p)
	}
	if len(loaded) == 0 {
		return nil, errors.Wrapf(ErrNoPackages, "%s %s", dir, strings.Join(patterns, " "))
	}

	c := newConverter(loaded, opts.Unexported)
	b := metadata.NewBuilder(name, false)
	for _, p := range loaded {
		mode := doc.PreserveAST
		if opts.Unexported {
			mode |= doc.AllDecls
		}
		dp, err := doc.NewFromFiles(p.Fset, p.Syntax, p.PkgPath, mode)
		if err != nil {
			return nil, errors.Wrapf(err, "reading documentation of %s", p.PkgPath)
		}
		specs := c.packageSpecs(p, dp)
		logger.Debug("loaded package", zap.String("package", p.PkgPath), zap.Int("types", len(specs)))
		for _, s := range specs {
			b.Add(s)
		}
	}

	descs, err := b.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "building %s", name)
	}
	docs, err := b.Comments()
	if err != nil {
		return nil, errors.Wrapf(err, "reading documentation of %s", name)
	}
	return &types.Artifact{Name: name, Path: dir, Types: descs, Comments: docs}, nil
}
