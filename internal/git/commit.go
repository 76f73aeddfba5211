// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"time"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit stages the given pages and commits them with a generated
// message carrying the Generated-By trailer. Paths are relative to
// WorkDir. It reports whether a commit was made; no files means no
// commit.
func (r *Repo) Commit(files []string, summary string) (bool, error) {
	if len(files) == 0 {
		return false, nil
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, errors.Wrap(err, "getting worktree")
	}

	// Stage only the pages this run wrote.
	for _, f := range files {
		rel, err := r.repoPath(f)
		if err != nil {
			return false, err
		}
		if _, err := wt.Add(rel); err != nil {
			return false, errors.Wrapf(err, "staging %s", rel)
		}
	}

	_, err = wt.Commit(GenerateMessage(summary, files), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  r.cfg.Author,
			Email: r.cfg.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return false, errors.Wrap(err, "committing")
	}
	return true, nil
}

// Undo reverts the last commit if it came from go-typedoc. It resets
// softly to the parent, so the pages stay in the working tree.
func (r *Repo) Undo() error {
	ok, err := r.IsTypedocCommit()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotTypedocCommit
	}

	head, err := r.repo.Head()
	if err != nil {
		return errors.Wrap(err, "getting HEAD")
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return errors.Wrap(err, "getting commit")
	}
	if commit.NumParents() == 0 {
		return errors.New("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return errors.Wrap(err, "getting parent commit")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "getting worktree")
	}
	err = wt.Reset(&gogit.ResetOptions{
		Commit: parent.Hash,
		Mode:   gogit.SoftReset,
	})
	if err != nil {
		return errors.Wrap(err, "resetting to parent")
	}
	return nil
}
