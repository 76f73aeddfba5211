// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/metadata"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// Options configures Load.
type Options struct {
	// Artifact names the result. Empty means the directory name.
	Artifact string
	// External marks the types as documented elsewhere.
	External    bool
	Concurrency int
	Logger      *zap.Logger
}

// Load scans a source tree and builds its types into an artifact. Partial
// declarations spread over several files are merged. Types outside any
// namespace are skipped with their nested types.
func (e *Extractor) Load(ctx context.Context, dir string, opts Options) (*types.Artifact, error) {
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

	files, failures, stats, err := e.ScanDir(ctx, dir, opts.Concurrency)
	if err != nil {
		return nil, err
	}
	for _, f := range failures {
		logger.Warn("skipping source file", zap.String("file", f.Path), zap.Error(f.Err))
	}
	logger.Debug("scanned sources",
		zap.String("dir", dir),
		zap.Int("parsed", stats.FilesParsed),
		zap.Int("cached", stats.CacheHits),
		zap.Int("failed", stats.Failed),
	)

	specs := merge(files, logger)
	b := metadata.NewBuilder(name, opts.External)
	for _, s := range specs {
		b.Add(s)
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

// merge flattens the specs of all files, joining partial declarations
// that share a full name.
func merge(files []*File, logger *zap.Logger) []metadata.TypeSpec {
	var out []metadata.TypeSpec
	index := make(map[string]int)
	skipped := make(map[string]bool)

	for _, f := range files {
		for _, w := range f.Warnings {
			logger.Debug(w)
		}
		for _, s := range f.Types {
			own := ownName(s.Name, s.Generics)
			var key string
			switch {
			case s.DeclaringType != "":
				key = s.DeclaringType + "+" + own
				if skipped[s.DeclaringType] {
					skipped[key] = true
					continue
				}
			case s.Namespace == "":
				logger.Debug("skipping type outside a namespace", zap.String("type", s.Name), zap.String("file", f.Path))
				skipped[own] = true
				continue
			default:
				key = s.Namespace + "." + own
			}

			s.Usings = slices.Clone(f.Usings)
			s.Interfaces = slices.Clone(s.Interfaces)
			s.Members = slices.Clone(s.Members)
			if i, ok := index[key]; ok {
				mergeSpec(&out[i], s)
				continue
			}
			index[key] = len(out)
			out = append(out, s)
		}
	}
	return out
}

func mergeSpec(dst *metadata.TypeSpec, src metadata.TypeSpec) {
	dst.Abstract = dst.Abstract || src.Abstract
	dst.Sealed = dst.Sealed || src.Sealed
	dst.Static = dst.Static || src.Static
	if dst.Doc == "" {
		dst.Doc = src.Doc
	}
	if dst.Base == "" {
		dst.Base = src.Base
	}
	for _, i := range src.Interfaces {
		if !slices.Contains(dst.Interfaces, i) {
			dst.Interfaces = append(dst.Interfaces, i)
		}
	}
	for _, u := range src.Usings {
		if !slices.Contains(dst.Usings, u) {
			dst.Usings = append(dst.Usings, u)
		}
	}
	dst.Members = append(dst.Members, src.Members...)
}
