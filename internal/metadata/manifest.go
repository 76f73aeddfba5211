// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metadata turns declarative type metadata into descriptors. A
// manifest lists one artifact's types; the Builder resolves their
// references into a connected descriptor graph that the symbol registry
// and renderers consume. Source extractors feed the same Builder.
package metadata

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

var (
	// ErrInvalidManifest is returned for manifests that cannot be built:
	// unknown kinds, duplicate types, malformed references, or cycles.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrUnresolvedType is returned when a nested type's declaring type is
	// not part of the artifact.
	ErrUnresolvedType = errors.New("unresolved type")
)

// Manifest describes the types of one artifact.
type Manifest struct {
	Artifact string     `yaml:"artifact"`
	External bool       `yaml:"external,omitempty"`
	Usings   []string   `yaml:"usings,omitempty"`
	Types    []TypeSpec `yaml:"types"`
}

// TypeSpec describes one declared type. Name is the bare name; the arity
// suffix is derived from Generics.
type TypeSpec struct {
	Namespace     string       `yaml:"namespace,omitempty"`
	Name          string       `yaml:"name"`
	Kind          string       `yaml:"kind"`
	Visibility    string       `yaml:"visibility,omitempty"`
	Abstract      bool         `yaml:"abstract,omitempty"`
	Sealed        bool         `yaml:"sealed,omitempty"`
	Static        bool         `yaml:"static,omitempty"`
	Generics      []string     `yaml:"generics,omitempty"`
	Base          string       `yaml:"base,omitempty"`
	Interfaces    []string     `yaml:"interfaces,omitempty"`
	DeclaringType string       `yaml:"declaringType,omitempty"`
	Usings        []string     `yaml:"usings,omitempty"`
	Summary       string       `yaml:"summary,omitempty"`
	Doc           string       `yaml:"doc,omitempty"`
	Members       []MemberSpec `yaml:"members,omitempty"`
}

// MemberSpec describes one member of a type.
type MemberSpec struct {
	Kind       string      `yaml:"kind"`
	Name       string      `yaml:"name,omitempty"`
	Visibility string      `yaml:"visibility,omitempty"`
	Static     bool        `yaml:"static,omitempty"`
	Abstract   bool        `yaml:"abstract,omitempty"`
	Type       string      `yaml:"type,omitempty"`
	Generics   []string    `yaml:"generics,omitempty"`
	Parameters []ParamSpec `yaml:"parameters,omitempty"`
	Value      string      `yaml:"value,omitempty"`
	Summary    string      `yaml:"summary,omitempty"`
	Doc        string      `yaml:"doc,omitempty"`
}

// ParamSpec describes one parameter.
type ParamSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ParseManifest decodes a YAML manifest. Unknown fields are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(ErrInvalidManifest, err.Error())
	}
	if m.Artifact == "" {
		return nil, errors.Wrap(ErrInvalidManifest, "artifact name is required")
	}
	return &m, nil
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, errors.Wrap(err, "encoding manifest")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding manifest")
	}
	return buf.Bytes(), nil
}

// Load reads a manifest file and builds its artifact. Summaries and doc
// blocks in the manifest become the artifact's comment source.
func Load(path string) (*types.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	a, err := Build(m)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s", path)
	}
	a.Path = path
	return a, nil
}

// Build resolves a manifest into an artifact.
func Build(m *Manifest) (*types.Artifact, error) {
	b := NewBuilder(m.Artifact, m.External)
	b.Usings = m.Usings
	for _, spec := range m.Types {
		b.Add(spec)
	}
	descs, err := b.Build()
	if err != nil {
		return nil, err
	}
	docs, err := b.Comments()
	if err != nil {
		return nil, err
	}
	return &types.Artifact{Name: m.Artifact, Types: descs, Comments: docs}, nil
}

// specComments collects the inline documentation of built types.
func specComments(built []*Type, specs []TypeSpec) (comments.Map, error) {
	docs := make(comments.Map)
	for i, t := range built {
		spec := specs[i]
		if err := addDoc(docs, comments.TypeID(t), spec.Summary, spec.Doc); err != nil {
			return nil, errors.Wrapf(err, "type %s", spec.Name)
		}
		for j, ms := range spec.Members {
			if err := addDoc(docs, comments.MemberID(t, t.members[j]), ms.Summary, ms.Doc); err != nil {
				return nil, errors.Wrapf(err, "member %s.%s", spec.Name, ms.Name)
			}
		}
	}
	return docs, nil
}

func addDoc(docs comments.Map, id, summary, block string) error {
	switch {
	case block != "":
		doc, err := comments.ParseBlock(block)
		if err != nil {
			return err
		}
		docs[id] = doc
	case summary != "":
		docs.Summary(id, summary)
	}
	return nil
}
