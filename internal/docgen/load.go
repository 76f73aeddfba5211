// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package docgen

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/internal/csharp"
	"github.com/petar-djukic/go-typedoc/internal/gotypes"
	"github.com/petar-djukic/go-typedoc/internal/metadata"
	"github.com/petar-djukic/go-typedoc/internal/project"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// Loader loads one artifact.
type Loader interface {
	Load(ctx context.Context, src project.Artifact) (*types.Artifact, error)
}

// SourceLoader loads manifests, C# source trees, and Go modules. Its C#
// extractor keeps parsed files across runs.
type SourceLoader struct {
	extractor   *csharp.Extractor
	logger      *zap.Logger
	concurrency int
}

// NewSourceLoader returns a SourceLoader.
func NewSourceLoader(logger *zap.Logger, concurrency int) *SourceLoader {
	return &SourceLoader{extractor: csharp.NewExtractor(), logger: logger, concurrency: concurrency}
}

// Load loads src in its format and layers its XML documentation file,
// if any, over the artifact's own comments.
func (l *SourceLoader) Load(ctx context.Context, src project.Artifact) (*types.Artifact, error) {
	format := src.Format
	if format == project.FormatAuto {
		f, err := project.DetectFormat(src.Path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var (
		a   *types.Artifact
		err error
	)
	switch format {
	case project.FormatManifest:
		a, err = loadManifest(src)
	case project.FormatCSharp:
		a, err = l.extractor.Load(ctx, src.Path, csharp.Options{
			Artifact:    src.Name,
			External:    src.External,
			Concurrency: l.concurrency,
			Logger:      l.logger,
		})
	case project.FormatGo:
		a, err = gotypes.Load(ctx, src.Path, gotypes.Options{Artifact: src.Name, Logger: l.logger})
	default:
		return nil, errors.Wrapf(project.ErrInvalidProject, "unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if src.Docs != "" {
		xmlDocs, err := comments.Load(src.Docs)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", src.Docs)
		}
		if a.Comments != nil {
			a.Comments = comments.Chain{xmlDocs, a.Comments}
		} else {
			a.Comments = xmlDocs
		}
	}
	return a, nil
}

// loadManifest builds a manifest with the project's name and external
// settings applied over its own.
func loadManifest(src project.Artifact) (*types.Artifact, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	m, err := metadata.ParseManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", src.Path)
	}
	if src.Name != "" {
		m.Artifact = src.Name
	}
	m.External = m.External || src.External
	a, err := metadata.Build(m)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s", src.Path)
	}
	a.Path = src.Path
	return a, nil
}
