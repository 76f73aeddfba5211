// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project reads and writes documentation project files. A
// project names the output directory, the index page, an optional
// namespace filter, and the artifacts to document.
package project

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file name used when none is given.
const DefaultFile = "typedoc.yaml"

// Artifact formats.
const (
	FormatAuto     = ""
	FormatManifest = "manifest"
	FormatCSharp   = "csharp"
	FormatGo       = "go"
)

// ErrInvalidProject is returned for project files that cannot be used.
var ErrInvalidProject = errors.New("invalid project")

// Project is the content of a project file. Relative paths are relative
// to the project file.
type Project struct {
	Output         string     `yaml:"output"`
	Index          string     `yaml:"index,omitempty"`
	NamespaceMatch string     `yaml:"namespaceMatch,omitempty"`
	ExternalDocs   string     `yaml:"externalDocs,omitempty"`
	Artifacts      []Artifact `yaml:"artifacts"`
}

// Artifact is one documentation input.
type Artifact struct {
	// Path is a manifest file, a C# source directory, or a Go module
	// directory.
	Path string `yaml:"path"`
	// Format selects the loader. Empty means detect from Path.
	Format string `yaml:"format,omitempty"`
	// Name overrides the artifact name.
	Name string `yaml:"name,omitempty"`
	// Docs is an XML documentation file merged over the artifact's own
	// comments.
	Docs string `yaml:"docs,omitempty"`
	// External marks the types as documented elsewhere: they resolve
	// links but get no pages.
	External bool `yaml:"external,omitempty"`
}

func validFormat(f string) bool {
	switch f {
	case FormatAuto, FormatManifest, FormatCSharp, FormatGo:
		return true
	}
	return false
}

// Validate checks the project for missing or unknown settings.
func (p *Project) Validate() error {
	if p.Output == "" {
		return errors.Wrap(ErrInvalidProject, "output is required")
	}
	if len(p.Artifacts) == 0 {
		return errors.Wrap(ErrInvalidProject, "at least one artifact is required")
	}
	for i, a := range p.Artifacts {
		if a.Path == "" {
			return errors.Wrapf(ErrInvalidProject, "artifact %d: path is required", i)
		}
		if !validFormat(a.Format) {
			return errors.Wrapf(ErrInvalidProject, "artifact %s: unknown format %q", a.Path, a.Format)
		}
	}
	return nil
}

// Parse decodes a project. Unknown fields are rejected.
func Parse(data []byte) (*Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(ErrInvalidProject, err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a project file and makes its paths absolute.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading project")
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(err, "resolving project directory")
	}
	p.Output = resolve(base, p.Output)
	for i := range p.Artifacts {
		p.Artifacts[i].Path = resolve(base, p.Artifacts[i].Path)
		if p.Artifacts[i].Docs != "" {
			p.Artifacts[i].Docs = resolve(base, p.Artifacts[i].Docs)
		}
	}
	return p, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// Save writes the project as YAML.
func (p *Project) Save(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(err, "encoding project")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding project")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "writing project")
	}
	return nil
}

// Init builds a project from glob patterns relative to root. Each match
// becomes an artifact with its format detected. Paths in the result stay
// relative to root.
func Init(root, output string, patterns []string) (*Project, error) {
	seen := make(map[string]bool)
	var artifacts []Artifact
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidProject, "pattern %q: %v", pattern, err)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(root, m)
			if err != nil {
				return nil, errors.Wrap(err, "relativizing path")
			}
			if seen[rel] {
				continue
			}
			format, err := DetectFormat(m)
			if err != nil {
				continue
			}
			seen[rel] = true
			artifacts = append(artifacts, Artifact{Path: filepath.ToSlash(rel), Format: format})
		}
	}
	if len(artifacts) == 0 {
		return nil, errors.Wrapf(ErrInvalidProject, "no artifacts match %v", patterns)
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	return &Project{Output: output, Artifacts: artifacts}, nil
}

// DetectFormat guesses the format of an artifact path: YAML files are
// manifests, directories with a go.mod are Go modules, and other
// directories are C# source trees.
func DetectFormat(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(err, "detecting artifact format")
	}
	if !info.IsDir() {
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			return FormatManifest, nil
		}
		return "", errors.Wrapf(ErrInvalidProject, "%s: unsupported artifact file", path)
	}
	if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
		return FormatGo, nil
	}
	return FormatCSharp, nil
}
