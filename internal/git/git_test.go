// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestOpen_Subdirectory(t *testing.T) {
	dir := initTestRepo(t)
	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))

	repo, err := Open(Config{WorkDir: docs})
	require.NoError(t, err)
	rel, err := repo.repoPath("Acme/Circle.md")
	require.NoError(t, err)
	assert.Equal(t, "docs/Acme/Circle.md", rel)

	_, err = repo.repoPath("../../outside.md")
	assert.Error(t, err)
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(Config{WorkDir: dir})
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestIsDirty_CleanRepo(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestIsDirty_WithUnstagedChanges(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	// Modify a tracked file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Index\n\nChanged.\n"), 0o644))

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestIsDirty_WithUntrackedFiles(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.md"), []byte("# New\n"), 0o644))

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestIsTypedocCommit(t *testing.T) {
	t.Run("generated commit", func(t *testing.T) {
		dir := initTestRepo(t)
		addFileAndCommit(t, dir, "Circle.md", "# Circle\n", "docs: update\n\n"+generatedTrailer)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ok, err := repo.IsTypedocCommit()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("hand-written commit", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ok, err := repo.IsTypedocCommit()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGenerateMessage(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		files   []string
		subject string
	}{
		{
			name:    "summary",
			summary: "Regenerate 3 pages.",
			files:   []string{"index.md"},
			subject: "docs: regenerate 3 pages",
		},
		{
			name:    "empty summary",
			summary: "  ",
			subject: "docs: regenerate API reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GenerateMessage(tt.summary, tt.files)
			assert.Equal(t, tt.subject, firstLineOf(msg))
			assert.True(t, strings.HasSuffix(msg, "\n\n"+generatedTrailer))
		})
	}
}

func TestGenerateMessage_LongSummaryTruncated(t *testing.T) {
	long := "Regenerate the reference for every namespace of the product after the release branch was cut this morning"
	msg := GenerateMessage(long, nil)

	firstLine := firstLineOf(msg)
	assert.LessOrEqual(t, len(firstLine), maxSubjectLength)
	assert.Contains(t, firstLine, "...")
}

func TestGenerateMessage_ListsFiles(t *testing.T) {
	msg := GenerateMessage("update", []string{"a.md", "b.md"})
	assert.Contains(t, msg, "Updated pages:\n- a.md\n- b.md\n\n")

	var many []string
	for i := 0; i < maxListedFiles+5; i++ {
		many = append(many, "p.md")
	}
	msg = GenerateMessage("update", many)
	assert.Contains(t, msg, "- ... and 5 more")
	assert.Equal(t, maxListedFiles, strings.Count(msg, "- p.md"))
}

// initTestRepo creates a temp dir with a git repo, an initial commit, and
// returns the directory path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Index\n"), 0o644))

	_, err = wt.Add("index.md")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

// addFileAndCommit adds a file and creates a commit with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func firstLineOf(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
