// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-typedoc/internal/render"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Index\n")
	writeFile(t, dir, "Acme/Circle.md", "# Circle\n\nOld text.\n")
	writeFile(t, dir, "Acme/Square.md", "# Square\n")
	writeFile(t, dir, "Acme/notes.txt", "not a page")
	writeFile(t, dir, ".git/README.md", "ignored")

	pages := []render.Page{
		{Path: "index.md", Content: "# Index\n"},
		{Path: "Acme/Circle.md", Content: "# Circle\n\nNew text.\n"},
		{Path: "Acme/Shape.md", Content: "# Shape\n"},
	}
	report, err := Compare(dir, pages)
	require.NoError(t, err)
	assert.False(t, report.UpToDate())
	assert.Equal(t, 3, report.Checked)

	require.Len(t, report.Findings, 3)
	assert.Equal(t, Finding{Path: "Acme/Shape.md", Status: Missing}, report.Findings[1])
	assert.Equal(t, Finding{Path: "Acme/Square.md", Status: Orphan}, report.Findings[2])

	stale := report.Findings[0]
	assert.Equal(t, "Acme/Circle.md", stale.Path)
	assert.Equal(t, Stale, stale.Status)
	assert.Equal(t, " # Circle\n \n-Old text.\n+New text.\n", stale.Diff)
	assert.Greater(t, stale.Similarity, 0.5)
	assert.Less(t, stale.Similarity, 1.0)

	assert.Equal(t, 1, report.Count(Missing))
	assert.Equal(t, 1, report.Count(Stale))
	assert.Equal(t, 1, report.Count(Orphan))
}

func TestCompare_UpToDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Index\n")
	report, err := Compare(dir, []render.Page{{Path: "index.md", Content: "# Index\n"}})
	require.NoError(t, err)
	assert.True(t, report.UpToDate())
}

func TestCompare_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	report, err := Compare(dir, []render.Page{{Path: "index.md", Content: "# Index\n"}})
	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, Missing, report.Findings[0].Status)
}

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{name: "equal", old: "a\nb\n", new: "a\nb\n", want: " a\n b\n"},
		{name: "added", old: "a\n", new: "a\nb\n", want: " a\n+b\n"},
		{name: "removed no newline", old: "a\nb", new: "a\n", want: " a\n-b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineDiff(tt.old, tt.new))
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "missing", Missing.String())
	assert.Equal(t, "stale", Stale.String())
	assert.Equal(t, "orphan", Orphan.String())
	assert.Equal(t, "unknown", Status(9).String())
}
