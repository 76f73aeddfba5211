// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch reruns a build when its inputs change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/logging"
)

const defaultDebounce = 500 * time.Millisecond

var skipDirs = map[string]bool{
	".git":         true,
	".vs":          true,
	"bin":          true,
	"obj":          true,
	"node_modules": true,
}

// Config configures a Watcher.
type Config struct {
	// Paths are files or directories. Directories are watched with all
	// their subdirectories.
	Paths []string
	// Ignore lists directories whose changes never trigger a run, such as
	// the output directory.
	Ignore   []string
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watcher watches input paths and calls back after changes settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool // Explicitly watched files; others are filtered out of their directory
	dirs     map[string]bool // Directories watched as trees
	ignore   []string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a Watcher and registers every path.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: cfg.Debounce,
		logger:   logging.OrNop(cfg.Logger),
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	for _, p := range cfg.Ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "resolving %s", p)
		}
		w.ignore = append(w.ignore, abs)
	}
	for _, p := range cfg.Paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}
	if !info.IsDir() {
		// Editors replace files on save, so the directory is watched.
		w.files[abs] = true
		return errors.Wrapf(w.fsw.Add(filepath.Dir(abs)), "watching %s", path)
	}
	return w.addTree(abs)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDirs[d.Name()] || w.ignored(path) {
			return filepath.SkipDir
		}
		w.dirs[path] = true
		return errors.Wrapf(w.fsw.Add(path), "watching %s", path)
	})
}

func (w *Watcher) ignored(path string) bool {
	for _, ig := range w.ignore {
		if path == ig || strings.HasPrefix(path, ig+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// relevant reports whether an event should trigger a run.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || w.ignored(ev.Name) {
		return false
	}
	if w.files[ev.Name] {
		return true
	}
	return w.dirs[filepath.Dir(ev.Name)]
}

// Run calls fn once changes have been quiet for the debounce period,
// until ctx is cancelled. Calls never overlap. Errors from fn are logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) && w.dirs[filepath.Dir(ev.Name)] {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn("cannot watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			w.logger.Debug("input changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := fn(ctx); err != nil {
				w.logger.Error("rebuild failed", zap.Error(err))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}
