// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package comments

import "github.com/petar-djukic/go-typedoc/pkg/types"

// Map is an in-memory comment source keyed by member ID.
type Map map[string]*types.MemberDoc

// Lookup implements types.CommentSource.
func (m Map) Lookup(id string) (*types.MemberDoc, bool) {
	doc, ok := m[id]
	return doc, ok
}

// Summary records plain summary text for id.
func (m Map) Summary(id, text string) {
	if text == "" {
		return
	}
	m[id] = &types.MemberDoc{Summary: types.Text{{Text: text}}}
}

// Chain consults each source in order and returns the first hit. Nil
// sources are skipped.
type Chain []types.CommentSource

// Lookup implements types.CommentSource.
func (c Chain) Lookup(id string) (*types.MemberDoc, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if doc, ok := s.Lookup(id); ok {
			return doc, true
		}
	}
	return nil, false
}
