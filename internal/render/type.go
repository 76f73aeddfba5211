// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"strings"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/internal/markdown"
	"github.com/petar-djukic/go-typedoc/internal/symbol"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// typePage holds the state of one type page while it is written. doc is
// swapped for a block quote while member details are written.
type typePage struct {
	*Renderer
	sym  *symbol.TypeSymbol
	desc types.TypeDescriptor
	docs types.CommentSource
	doc  *markdown.Document
}

// sections lists the member sections in page order.
var sections = []struct {
	kind  types.MemberKind
	title string
}{
	{types.Property, "Properties"},
	{types.Constructor, "Constructors"},
	{types.Method, "Methods"},
	{types.Event, "Events"},
	{types.Field, "Fields"},
}

func (p *typePage) write() error {
	name, err := p.sym.SimplifiedName()
	if err != nil {
		return err
	}
	p.doc.Header(markdown.EscapeChevrons(name), 1)
	p.doc.Paragraph("Namespace: " + symbol.NamespaceOf(p.desc))

	typeDoc := lookup(p.docs, comments.TypeID(p.desc))
	if err := p.summary(typeDoc); err != nil {
		return err
	}
	sig, err := p.sym.Signature(true)
	if err != nil {
		return err
	}
	p.doc.Code("csharp", sig)
	if err := p.typeParameters(p.desc.GenericParameters(), typeDoc); err != nil {
		return err
	}
	if err := p.remarks(typeDoc); err != nil {
		return err
	}
	if err := p.inheritance(); err != nil {
		return err
	}
	if err := p.implements(); err != nil {
		return err
	}

	for _, sec := range sections {
		if sec.kind == types.Field && p.desc.Kind() == types.Enum {
			continue
		}
		if err := p.members(sec.kind, sec.title); err != nil {
			return err
		}
	}
	if p.desc.Kind() == types.Enum {
		if err := p.enumFields(); err != nil {
			return err
		}
	}

	if p.index != nil {
		url, err := symbol.Link(p.sym, p.index)
		if err != nil {
			return err
		}
		p.doc.Paragraph(markdown.Link(markdown.Code("< Index"), url))
	}
	return nil
}

func (p *typePage) summary(doc *types.MemberDoc) error {
	if doc == nil || doc.Summary.IsEmpty() {
		return nil
	}
	text, err := p.text(p.sym, doc.Summary)
	if err != nil {
		return err
	}
	p.doc.Paragraph(text)
	return nil
}

func (p *typePage) remarks(doc *types.MemberDoc) error {
	if doc == nil || doc.Remarks.IsEmpty() {
		return nil
	}
	text, err := p.text(p.sym, doc.Remarks)
	if err != nil {
		return err
	}
	p.doc.Header("Remarks", 4)
	p.doc.Paragraph(text)
	return nil
}

func (p *typePage) typeParameters(params []types.TypeDescriptor, doc *types.MemberDoc) error {
	if len(params) == 0 {
		return nil
	}
	p.doc.Header("Type Parameters", 4)
	for _, tp := range params {
		name, err := p.reg.Resolve(tp).DisplayName()
		if err != nil {
			return err
		}
		var desc string
		if doc != nil {
			desc = doc.TypeParams[tp.Name()]
		}
		p.doc.Paragraph(markdown.Code(name) + markdown.LineBreak + desc)
	}
	return nil
}

func (p *typePage) inheritance() error {
	if p.desc.BaseType() == nil {
		return nil
	}
	chain, err := p.sym.InheritanceHierarchy()
	if err != nil {
		return err
	}
	links := make([]string, len(chain))
	for i, s := range chain {
		link, err := p.typeLink(p.sym, s)
		if err != nil {
			return err
		}
		links[len(chain)-1-i] = link
	}
	p.doc.Paragraph("Inheritance " + strings.Join(links, " → "))
	return nil
}

func (p *typePage) implements() error {
	ifaces, err := p.sym.Interfaces()
	if err != nil || len(ifaces) == 0 {
		return err
	}
	links := make([]string, len(ifaces))
	for i, s := range ifaces {
		link, err := p.typeLink(p.sym, s)
		if err != nil {
			return err
		}
		links[i] = link
	}
	p.doc.Paragraph("Implements " + strings.Join(links, ", "))
	return nil
}

func (p *typePage) members(kind types.MemberKind, title string) error {
	var selected []types.Member
	for _, m := range p.desc.Members() {
		if m.Kind == kind && m.Visibility != types.Private {
			selected = append(selected, m)
		}
	}
	if len(selected) == 0 {
		return nil
	}

	p.doc.Header(title, 2)
	for _, m := range selected {
		if err := p.member(m); err != nil {
			return err
		}
	}
	p.doc.Rule()
	return nil
}

func (p *typePage) member(m types.Member) error {
	compact, err := p.memberSignature(m, false)
	if err != nil {
		return err
	}
	full, err := p.memberSignature(m, true)
	if err != nil {
		return err
	}
	doc := memberDoc(p.docs, p.desc, m)

	p.doc.Header(markdown.EscapeChevrons(compact), 3)
	if err := p.summary(doc); err != nil {
		return err
	}
	p.doc.Code("csharp", full)

	outer := p.doc
	p.doc = outer.Blockquote()
	switch m.Kind {
	case types.Method, types.Constructor:
		err = p.methodDetails(m, doc)
	case types.Property:
		err = p.valueDetails(m, doc)
	}
	p.doc = outer
	if err != nil {
		return err
	}

	if err := p.remarks(doc); err != nil {
		return err
	}
	p.exceptions(doc)
	return nil
}

func (p *typePage) methodDetails(m types.Member, doc *types.MemberDoc) error {
	if err := p.typeParameters(m.TypeParams, doc); err != nil {
		return err
	}
	if len(m.Parameters) > 0 {
		p.doc.Header("Parameters", 4)
		for _, param := range m.Parameters {
			name, err := p.simplifiedName(param.Type, param.Suffix)
			if err != nil {
				return err
			}
			var desc string
			if doc != nil {
				desc = doc.Params[param.Name]
			}
			p.doc.Paragraph(param.Name + " : " + markdown.Code(name) + markdown.LineBreak + desc)
		}
	}
	if m.Kind == types.Method && m.Type != nil {
		name, err := p.typeName(m.Type, m.TypeSuffix)
		if err != nil {
			return err
		}
		var desc string
		if doc != nil {
			desc = doc.Returns
		}
		p.doc.Header("Returns", 4)
		p.doc.Paragraph(markdown.EscapeChevrons(name) + markdown.LineBreak + desc)
	}
	return nil
}

func (p *typePage) valueDetails(m types.Member, doc *types.MemberDoc) error {
	name, err := p.typeName(m.Type, m.TypeSuffix)
	if err != nil {
		return err
	}
	var desc string
	if doc != nil {
		desc = doc.Value
	}
	p.doc.Header("Property Value", 4)
	p.doc.Paragraph(markdown.Code(name) + markdown.LineBreak + desc)
	return nil
}

func (p *typePage) exceptions(doc *types.MemberDoc) {
	if doc == nil || len(doc.Exceptions) == 0 {
		return
	}
	p.doc.Header("Exceptions", 4)
	for _, ex := range doc.Exceptions {
		var text []string
		if len(ex.Cref) > 2 {
			name := ex.Cref[strings.LastIndexByte(ex.Cref, '.')+1:]
			if name != "" {
				text = append(text, name)
			}
		}
		if ex.Text != "" {
			text = append(text, ex.Text)
		}
		if len(text) > 0 {
			p.doc.Paragraph(strings.Join(text, markdown.LineBreak))
		}
	}
}

func (p *typePage) enumFields() error {
	var rows [][]string
	for _, m := range p.desc.Members() {
		if m.Kind != types.Field {
			continue
		}
		var desc string
		if doc := memberDoc(p.docs, p.desc, m); doc != nil {
			text, err := p.text(p.sym, doc.Summary)
			if err != nil {
				return err
			}
			desc = text
		}
		rows = append(rows, []string{m.Name, m.Value, desc})
	}
	if len(rows) == 0 {
		return nil
	}
	p.doc.Header("Fields", 2)
	p.doc.Table([]string{"Name", "Value", "Description"}, rows)
	return nil
}
