// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no output", data: "artifacts:\n  - path: a.yaml"},
		{name: "no artifacts", data: "output: docs"},
		{name: "empty path", data: "output: docs\nartifacts:\n  - format: go"},
		{name: "unknown format", data: "output: docs\nartifacts:\n  - {path: a, format: java}"},
		{name: "unknown field", data: "output: docs\nlanguage: en\nartifacts:\n  - path: a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrInvalidProject), "got %v", err)
		})
	}
}

func TestLoad_ResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	data := "output: docs\nindex: home\nartifacts:\n  - {path: src, format: csharp, docs: out/Acme.xml}\n  - {path: /abs/types.yaml}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs"), p.Output)
	assert.Equal(t, "home", p.Index)
	require.Len(t, p.Artifacts, 2)
	assert.Equal(t, filepath.Join(dir, "src"), p.Artifacts[0].Path)
	assert.Equal(t, filepath.Join(dir, "out", "Acme.xml"), p.Artifacts[0].Docs)
	assert.Equal(t, filepath.Clean("/abs/types.yaml"), p.Artifacts[1].Path)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	want := &Project{
		Output:         "docs",
		NamespaceMatch: "Acme.*",
		Artifacts:      []Artifact{{Path: "types.yaml", Format: FormatManifest, External: true}},
	}
	require.NoError(t, want.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.True(t, errors.Is((&Project{}).Save(path), ErrInvalidProject))
}

func TestInit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "Acme"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "tool"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "tool", "go.mod"), []byte("module tool\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "types.yaml"), []byte("artifact: A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	p, err := Init(root, "docs", []string{"src/*", "*.yaml", "*.txt", "src/*"})
	require.NoError(t, err)
	assert.Equal(t, "docs", p.Output)
	assert.Equal(t, []Artifact{
		{Path: "src/Acme", Format: FormatCSharp},
		{Path: "src/tool", Format: FormatGo},
		{Path: "types.yaml", Format: FormatManifest},
	}, p.Artifacts)

	_, err = Init(root, "docs", []string{"*.none"})
	assert.True(t, errors.Is(err, ErrInvalidProject))
}
