// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package docgen

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/internal/render"
)

// ErrInvalidPattern is returned for namespace patterns that are neither a
// regular expression nor a glob.
var ErrInvalidPattern = errors.New("invalid namespace pattern")

// NamespaceFilter returns a predicate for namespaces. A pattern that
// compiles as a regular expression is matched as one; anything else is a
// glob. The empty pattern matches everything.
func NamespaceFilter(pattern string) (func(namespace string) bool, error) {
	if strings.TrimSpace(pattern) == "" {
		return func(string) bool { return true }, nil
	}
	if re, err := regexp.Compile(pattern); err == nil {
		return re.MatchString, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "%q", pattern)
	}
	return func(ns string) bool {
		ok, _ := path.Match(pattern, ns)
		return ok
	}, nil
}

// WritePages writes pages under dir. Files whose content is unchanged are
// left alone. It returns the paths written, relative to dir in slash
// form.
func WritePages(dir string, pages []render.Page) ([]string, error) {
	var written []string
	for _, p := range pages {
		full := filepath.Join(dir, filepath.FromSlash(p.Path))
		if old, err := os.ReadFile(full); err == nil && bytes.Equal(old, []byte(p.Content)) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return written, errors.Wrapf(err, "creating directory for %s", p.Path)
		}
		if err := os.WriteFile(full, []byte(p.Content), 0o644); err != nil {
			return written, errors.Wrapf(err, "writing %s", p.Path)
		}
		written = append(written, p.Path)
	}
	return written, nil
}
