// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoPage is returned when linking to a symbol without a page.
var ErrNoPage = errors.New("symbol has no page")

// splitDir cleans a "/"-separated directory relative to the output root
// and returns its elements. The root itself has none.
func splitDir(dir string) []string {
	clean := path.Clean("/" + strings.ReplaceAll(dir, `\`, "/"))
	if clean == "/" {
		return nil
	}
	return strings.Split(clean[1:], "/")
}

// RelativeDir returns the path from directory from to directory to. Both
// are taken relative to a common output root, so neither needs to exist.
// Equal directories yield ".".
func RelativeDir(from, to string) string {
	f, t := splitDir(from), splitDir(to)
	common := 0
	for common < len(f) && common < len(t) && f[common] == t[common] {
		common++
	}
	parts := make([]string, 0, len(f)-common+len(t)-common)
	for range f[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, t[common:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

// Link returns the relative URL of to's page as seen from from's page.
// A nil from yields the path from the output root.
func Link(from, to *TypeSymbol) (string, error) {
	if to == nil || !to.documented {
		id := ""
		if to != nil {
			id = to.identifier
		}
		return "", errors.Wrapf(ErrNoPage, "%s", id)
	}
	file := to.fileStem + ".md"
	if from == nil {
		return path.Join(to.directory, file), nil
	}
	rel := RelativeDir(from.directory, to.directory)
	if rel == "." {
		return file, nil
	}
	return rel + "/" + file, nil
}

// DocsLink returns the URL for a referenced type: its relative page link
// when documented in this run, its external reference URL when it belongs
// to an external artifact, and "" when there is nothing to link to.
func DocsLink(from, to *TypeSymbol) (string, error) {
	switch {
	case to.documented && to.desc != nil && !to.desc.IsExternal():
		return Link(from, to)
	case to.IsExternal():
		return to.ExternalURL()
	default:
		return "", nil
	}
}
