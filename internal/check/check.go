// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package check compares rendered pages with the pages on disk.
package check

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/go-typedoc/internal/render"
)

// Status classifies a page that is out of date.
type Status int

const (
	// Missing pages are rendered but absent on disk.
	Missing Status = iota
	// Stale pages exist on disk with different content.
	Stale
	// Orphan pages exist on disk but are no longer rendered.
	Orphan
)

func (s Status) String() string {
	switch s {
	case Missing:
		return "missing"
	case Stale:
		return "stale"
	case Orphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// Finding is one out-of-date page. Diff and Similarity are set for stale
// pages only.
type Finding struct {
	Path       string // Slash-separated, relative to the output directory
	Status     Status
	Diff       string
	Similarity float64
}

// Report lists the findings of one comparison, ordered by path.
type Report struct {
	Checked  int
	Findings []Finding
}

// UpToDate reports whether nothing needs to be regenerated.
func (r *Report) UpToDate() bool { return len(r.Findings) == 0 }

// Count returns the number of findings with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Compare checks pages against the Markdown files under dir. A missing
// dir means every page is missing.
func Compare(dir string, pages []render.Page) (*Report, error) {
	report := &Report{Checked: len(pages)}
	rendered := make(map[string]bool, len(pages))
	for _, p := range pages {
		rendered[p.Path] = true
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p.Path)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			report.Findings = append(report.Findings, Finding{Path: p.Path, Status: Missing})
		case err != nil:
			return nil, errors.Wrapf(err, "reading %s", p.Path)
		case string(data) != p.Content:
			report.Findings = append(report.Findings, Finding{
				Path:       p.Path,
				Status:     Stale,
				Diff:       LineDiff(string(data), p.Content),
				Similarity: similarity(string(data), p.Content),
			})
		}
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !rendered[rel] {
			report.Findings = append(report.Findings, Finding{Path: rel, Status: Orphan})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "scanning output directory")
	}

	sort.Slice(report.Findings, func(i, j int) bool { return report.Findings[i].Path < report.Findings[j].Path })
	return report, nil
}

// LineDiff returns a line diff from old to new. Removed lines start with
// "-", added lines with "+", unchanged lines with a space.
func LineDiff(old, new string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// similarity computes the Levenshtein-based similarity ratio of two
// strings, between 0.0 and 1.0.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	dmp := diffmatchpatch.New()
	distance := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	maxLen := max(len(a), len(b))
	return 1.0 - float64(distance)/float64(maxLen)
}
