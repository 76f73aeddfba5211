// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs contains directory names that are never scanned.
var skipDirs = map[string]bool{
	".git":         true,
	".vs":          true,
	"bin":          true,
	"obj":          true,
	"node_modules": true,
}

// ScanError records a file that could not be read or parsed.
type ScanError struct {
	Path string
	Err  error
}

func (e ScanError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Stats counts the work done by one scan.
type Stats struct {
	FilesParsed int
	CacheHits   int
	Failed      int
}

type cacheEntry struct {
	modTime time.Time
	file    *File
}

// Extractor parses the C# files of a source tree. Results are cached by
// path and modification time, so rescanning an unchanged tree is cheap.
// It is safe for concurrent use.
type Extractor struct {
	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewExtractor returns an extractor with an empty cache.
func NewExtractor() *Extractor {
	return &Extractor{cache: make(map[string]cacheEntry)}
}

// ScanDir parses every .cs file below dir with a bounded worker pool. It
// skips build output and VCS directories and honours the root
// .gitignore. Files that fail are collected in the returned errors and
// do not abort the scan. Files are returned ordered by path.
//
// concurrency <= 0 means runtime.NumCPU().
func (e *Extractor) ScanDir(ctx context.Context, dir string, concurrency int) ([]*File, []ScanError, Stats, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, Stats{}, errors.Wrap(err, "resolving directory")
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, nil, Stats{}, errors.Wrap(err, "stat directory")
	}
	if !info.IsDir() {
		return nil, nil, Stats{}, errors.Newf("%s is not a directory", absDir)
	}

	paths, err := collect(ctx, absDir)
	if err != nil {
		return nil, nil, Stats{}, err
	}

	type result struct {
		path  string
		file  *File
		err   error
		cache bool
	}
	jobs := make(chan string, len(paths))
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					results <- result{path: path, err: ctx.Err()}
					continue
				}
				f, hit, err := e.extract(ctx, path)
				results <- result{path: path, file: f, err: err, cache: hit}
			}
		}()
	}
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		files    []*File
		failures []ScanError
		stats    Stats
	)
	for r := range results {
		rel, relErr := filepath.Rel(absDir, r.path)
		if relErr != nil {
			rel = r.path
		}
		if r.err != nil {
			stats.Failed++
			failures = append(failures, ScanError{Path: filepath.ToSlash(rel), Err: r.err})
			continue
		}
		if r.cache {
			stats.CacheHits++
		} else {
			stats.FilesParsed++
		}
		files = append(files, r.file)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, stats, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return files, failures, stats, nil
}

// extract parses one file, using the cache when the file is unchanged.
func (e *Extractor) extract(ctx context.Context, path string) (*File, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	e.mu.Lock()
	if c, ok := e.cache[path]; ok && c.modTime.Equal(info.ModTime()) {
		e.mu.Unlock()
		return c.file, true, nil
	}
	e.mu.Unlock()

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	f, err := Parse(ctx, path, src)
	if err != nil {
		return nil, false, err
	}

	e.mu.Lock()
	e.cache[path] = cacheEntry{modTime: info.ModTime(), file: f}
	e.mu.Unlock()
	return f, false, nil
}

// collect lists the .cs files below root that are not ignored.
func collect(ctx context.Context, root string) ([]string, error) {
	gi := loadGitignore(root)
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if path == root {
				return nil
			}
			if skipDirs[d.Name()] || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".cs") {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking directory")
	}
	return paths, nil
}

// loadGitignore compiles the root .gitignore, or returns nil when there
// is none.
func loadGitignore(root string) *ignore.GitIgnore {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if len(patterns) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(patterns...)
}
