// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git commits generated documentation pages and undoes those
// commits.
package git

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const generatedTrailer = "Generated-By: go-typedoc"

// ErrNotTypedocCommit is returned when undo targets a commit that did not
// come from go-typedoc.
var ErrNotTypedocCommit = errors.New("not a go-typedoc commit")

// ErrNoGit is returned when the directory is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures git integration.
type Config struct {
	WorkDir string // Directory inside the repository; commit paths are relative to it
	Author  string // Defaults to "go-typedoc"
	Email   string // Defaults to "noreply@go-typedoc"
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	root string
	cfg  Config
}

// Open opens the repository containing the configured directory.
// Returns ErrNoGit if there is none.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(ErrNoGit, "%s: %v", cfg.WorkDir, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, errors.Wrapf(ErrNoGit, "%s: %v", cfg.WorkDir, err)
	}
	if cfg.Author == "" {
		cfg.Author = "go-typedoc"
	}
	if cfg.Email == "" {
		cfg.Email = "noreply@go-typedoc"
	}
	return &Repo{repo: r, root: wt.Filesystem.Root(), cfg: cfg}, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, errors.Wrap(err, "getting worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrap(err, "getting status")
	}
	return !status.IsClean(), nil
}

// IsTypedocCommit checks whether the HEAD commit came from go-typedoc by
// looking for the Generated-By trailer.
func (r *Repo) IsTypedocCommit() (bool, error) {
	msg, err := r.lastCommitMessage()
	if err != nil {
		return false, err
	}
	return strings.Contains(msg, generatedTrailer), nil
}

// repoPath converts a path relative to WorkDir into a slash-separated
// path relative to the repository root.
func (r *Repo) repoPath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.cfg.WorkDir, filepath.FromSlash(path))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}
	root, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		root = r.root
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf("%s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}

// lastCommitMessage returns the message of the HEAD commit.
func (r *Repo) lastCommitMessage() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "getting HEAD")
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", errors.Wrap(err, "getting commit")
	}
	return commit.Message, nil
}

// commitCount returns the total number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		count++
		return nil
	})
	return count, err
}
