// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/internal/markdown"
	"github.com/petar-djukic/go-typedoc/internal/symbol"
)

// ErrNoIndex is returned when the index page placeholder is not
// registered.
var ErrNoIndex = errors.New("index page is not registered")

// IndexPage renders the index: one section per artifact and, inside it,
// one list of type links per namespace. Namespaces rejected by include
// are left out; a nil include keeps everything.
func (r *Renderer) IndexPage(table *symbol.Table, include func(namespace string) bool) (Page, error) {
	if r.index == nil {
		return Page{}, ErrNoIndex
	}
	doc := markdown.New().Header("Index", 1)

	for _, artifact := range table.Artifacts() {
		var sections []string
		byNamespace := make(map[string][]*symbol.TypeSymbol)
		for _, ns := range table.Namespaces() {
			if include != nil && !include(ns) {
				continue
			}
			for _, s := range table.ByNamespace(ns) {
				if s.Descriptor().Artifact() == artifact {
					byNamespace[ns] = append(byNamespace[ns], s)
				}
			}
			if len(byNamespace[ns]) > 0 {
				sections = append(sections, ns)
			}
		}
		if len(sections) == 0 {
			continue
		}
		doc.Header(artifact, 2)

		for _, ns := range sections {
			syms := byNamespace[ns]
			sort.SliceStable(syms, func(i, j int) bool {
				return syms[i].Descriptor().Name() < syms[j].Descriptor().Name()
			})
			items := make([]string, 0, len(syms))
			for _, s := range syms {
				name, err := s.DisplayName()
				if err != nil {
					return Page{}, err
				}
				url, err := symbol.Link(r.index, s)
				if err != nil {
					return Page{}, err
				}
				items = append(items, markdown.Link(markdown.Code(name), url))
			}
			doc.Header(ns, 3)
			doc.List(items...)
		}
	}
	return Page{Path: r.index.Path(), Content: doc.String()}, nil
}
