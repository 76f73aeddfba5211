// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render turns registered symbols into Markdown pages: one page
// per type and an index page linking them.
package render

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/internal/markdown"
	"github.com/petar-djukic/go-typedoc/internal/symbol"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// IndexIdentifier is the registry key of the index page placeholder.
const IndexIdentifier = "index"

// Page is a rendered page. Path is "/"-separated and relative to the
// output root.
type Page struct {
	Path    string
	Content string
}

// Renderer renders pages for the symbols of one registry.
type Renderer struct {
	reg   *symbol.Registry
	index *symbol.TypeSymbol
}

// New returns a renderer. Type pages link back to the index when it is
// registered in reg under IndexIdentifier.
func New(reg *symbol.Registry) *Renderer {
	r := &Renderer{reg: reg}
	if idx, ok := reg.Get(IndexIdentifier); ok {
		r.index = idx
	}
	return r
}

// TypePage renders the page of a documented type. docs supplies the
// comments of the type's artifact and may be nil.
func (r *Renderer) TypePage(s *symbol.TypeSymbol, docs types.CommentSource) (Page, error) {
	if !s.IsWellDefined() {
		return Page{}, errors.Wrapf(symbol.ErrNotTypeSymbol, "%s", s.Identifier())
	}
	p := &typePage{Renderer: r, sym: s, desc: s.Descriptor(), docs: docs, doc: markdown.New()}
	if err := p.write(); err != nil {
		return Page{}, errors.Wrapf(err, "rendering %s", s.Identifier())
	}
	return Page{Path: s.Path(), Content: p.doc.String()}, nil
}

// typeLink renders a link to a referenced type, or its name in a code
// span when there is nothing to link to.
func (r *Renderer) typeLink(from, to *symbol.TypeSymbol) (string, error) {
	name, err := to.DisplayName()
	if err != nil {
		return "", err
	}
	url, err := symbol.DocsLink(from, to)
	if err != nil {
		return "", err
	}
	if url == "" {
		return markdown.Code(name), nil
	}
	return markdown.Link(markdown.EscapeChevrons(name), url), nil
}

// lookupDocName finds the registered symbol for a documentation-file type
// name such as "Acme.Outer`1.Inner". Nested types are tried by turning
// trailing dots into "+".
func (r *Renderer) lookupDocName(name string) (*symbol.TypeSymbol, bool) {
	id := strings.ReplaceAll(name, "`", "-")
	parts := strings.Split(id, ".")
	for nested := 0; nested < len(parts); nested++ {
		cut := len(parts) - nested
		candidate := strings.Join(parts[:cut], ".")
		if nested > 0 {
			candidate += "+" + strings.Join(parts[cut:], "+")
		}
		if s, ok := r.reg.Get(candidate); ok && s.IsWellDefined() {
			return s, true
		}
	}
	return nil, false
}

// crefLink renders a cross-reference. Types with a page or an external
// reference are linked; everything else is shown as code.
func (r *Renderer) crefLink(from *symbol.TypeSymbol, cref string) (string, error) {
	if len(cref) < 2 {
		return "", nil
	}
	if cref[1] != ':' {
		return markdown.Code(cref), nil
	}
	name := cref[2:]
	if cref[0] == 'T' {
		if s, ok := r.lookupDocName(name); ok {
			return r.typeLink(from, s)
		}
	}
	return markdown.Code(name), nil
}

// text renders documentation text with its cross-references resolved.
func (r *Renderer) text(from *symbol.TypeSymbol, t types.Text) (string, error) {
	var b strings.Builder
	for _, seg := range t {
		if seg.Cref == "" {
			b.WriteString(seg.Text)
			continue
		}
		link, err := r.crefLink(from, seg.Cref)
		if err != nil {
			return "", err
		}
		b.WriteString(link)
	}
	return strings.TrimSpace(b.String()), nil
}

func lookup(docs types.CommentSource, id string) *types.MemberDoc {
	if docs == nil {
		return nil
	}
	if d, ok := docs.Lookup(id); ok {
		return d
	}
	return nil
}

// memberDoc returns the documentation of m, or nil.
func memberDoc(docs types.CommentSource, owner types.TypeDescriptor, m types.Member) *types.MemberDoc {
	return lookup(docs, comments.MemberID(owner, m))
}
