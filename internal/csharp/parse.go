// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package csharp extracts type specs from C# sources with tree-sitter.
// Each file yields the types it declares, their members, and their "///"
// documentation; Load feeds a whole source tree to a metadata.Builder.
package csharp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/internal/metadata"
)

// File is what one source file declares.
type File struct {
	Path     string
	Usings   []string
	Types    []metadata.TypeSpec
	Warnings []string
}

// typeKinds maps declaration node types to manifest kinds.
var typeKinds = map[string]string{
	"class_declaration":         "class",
	"interface_declaration":     "interface",
	"struct_declaration":        "struct",
	"enum_declaration":          "enum",
	"record_declaration":        "class",
	"record_struct_declaration": "struct",
	"delegate_declaration":      "class",
}

// Parse extracts the types declared in one C# source file.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	root, err := sitter.ParseCtx(ctx, src, csharp.GetLanguage())
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if root == nil {
		return nil, errors.Newf("parsing %s: no syntax tree", path)
	}

	p := &parser{src: src, file: &File{Path: path}}
	if root.HasError() {
		p.warn("syntax errors; declarations may be incomplete")
	}
	p.file.Usings = usings(root, src)
	p.walk(root, "", "")
	return p.file, nil
}

type parser struct {
	src  []byte
	file *File
}

func (p *parser) warn(format string, args ...any) {
	p.file.Warnings = append(p.file.Warnings, p.file.Path+": "+fmt.Sprintf(format, args...))
}

func (p *parser) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(p.src)
}

// walk visits the children of n. ns is the enclosing namespace and parent
// the key of the enclosing type, if any. A file-scoped namespace applies
// to the declarations that follow it.
func (p *parser) walk(n *sitter.Node, ns, parent string) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch t := c.Type(); {
		case t == "namespace_declaration":
			p.walk(body(c), joinNamespace(ns, p.text(c.ChildByFieldName("name"))), "")
		case t == "file_scoped_namespace_declaration":
			ns = joinNamespace(ns, p.text(c.ChildByFieldName("name")))
			p.walk(c, ns, "")
		case t == "declaration_list":
			p.walk(c, ns, parent)
		case typeKinds[t] != "":
			p.typeDecl(c, ns, parent)
		}
	}
}

func body(n *sitter.Node) *sitter.Node {
	if b := n.ChildByFieldName("body"); b != nil {
		return b
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "declaration_list" || c.Type() == "enum_member_declaration_list" {
			return c
		}
	}
	return nil
}

func joinNamespace(outer, inner string) string {
	inner = strings.Join(strings.Fields(inner), "")
	if outer == "" {
		return inner
	}
	if inner == "" {
		return outer
	}
	return outer + "." + inner
}

func (p *parser) name(n *sitter.Node) string {
	if id := n.ChildByFieldName("name"); id != nil {
		return p.text(id)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "identifier" {
			return p.text(c)
		}
	}
	return ""
}

// modifiers returns the modifier keywords of a declaration.
func (p *parser) modifiers(n *sitter.Node) map[string]bool {
	mods := make(map[string]bool)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "modifier" {
			for _, w := range strings.Fields(p.text(c)) {
				mods[w] = true
			}
		}
	}
	return mods
}

// visibility maps access modifiers to a manifest keyword, or def when
// there are none.
func visibility(mods map[string]bool, def string) string {
	switch {
	case mods["protected"] && mods["internal"]:
		return "protected internal"
	case mods["public"]:
		return "public"
	case mods["protected"]:
		return "protected"
	case mods["internal"]:
		return "internal"
	case mods["private"]:
		return "private"
	default:
		return def
	}
}

func (p *parser) typeParams(n *sitter.Node) []string {
	list := n.ChildByFieldName("type_parameters")
	if list == nil {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c.Type() == "type_parameter_list" {
				list = c
				break
			}
		}
	}
	if list == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		if c := list.NamedChild(i); c.Type() == "type_parameter" {
			out = append(out, p.name(c))
		}
	}
	return out
}

// baseList returns the types named after the colon of a declaration.
func (p *parser) baseList(n *sitter.Node) []string {
	var list *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "base_list" {
			list = c
			break
		}
	}
	if list == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		c := list.NamedChild(i)
		switch c.Type() {
		case "argument_list", "comment":
			continue
		case "primary_constructor_base_type":
			if t := c.NamedChild(0); t != nil {
				c = t
			}
		}
		if ref, ok := p.typeRef(c); ok {
			out = append(out, ref)
		}
	}
	return out
}

// typeRef normalises a type node into the manifest reference grammar.
// Types the grammar cannot express, such as tuples, are reported and
// replaced with object.
func (p *parser) typeRef(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	s := strings.Join(strings.Fields(p.text(n)), " ")
	s = strings.ReplaceAll(s, "global::", "")
	for _, prefix := range []string{"ref readonly ", "ref ", "scoped "} {
		s = strings.TrimPrefix(s, prefix)
	}
	if _, err := metadata.ParseRef(s); err != nil {
		p.warn("unsupported type %q replaced with object", s)
		return "object", true
	}
	return s, true
}

// docComment returns the "///" block directly above n with the markers
// stripped, or "" when there is none or it is not well-formed.
func (p *parser) docComment(n *sitter.Node) string {
	var lines []string
	for c := n.PrevSibling(); c != nil && c.Type() == "comment"; c = c.PrevSibling() {
		text := p.text(c)
		if !strings.HasPrefix(text, "///") {
			break
		}
		lines = append(lines, strings.TrimPrefix(strings.TrimPrefix(text, "///"), " "))
	}
	if len(lines) == 0 {
		return ""
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	block := strings.Join(lines, "\n")
	if _, err := comments.ParseBlock(block); err != nil {
		p.warn("line %d: ignoring malformed documentation: %v", n.StartPoint().Row+1, err)
		return ""
	}
	return block
}

func ownName(name string, generics []string) string {
	if len(generics) == 0 {
		return name
	}
	return name + "`" + strconv.Itoa(len(generics))
}

func (p *parser) typeDecl(n *sitter.Node, ns, parent string) {
	name := p.name(n)
	if name == "" {
		p.warn("line %d: skipping type without a name", n.StartPoint().Row+1)
		return
	}
	mods := p.modifiers(n)
	kind := typeKinds[n.Type()]
	if n.Type() == "record_declaration" {
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "struct" {
				kind = "struct"
			}
		}
	}

	spec := metadata.TypeSpec{
		Name:     name,
		Kind:     kind,
		Abstract: mods["abstract"],
		Sealed:   mods["sealed"],
		Static:   mods["static"],
		Generics: p.typeParams(n),
		Doc:      p.docComment(n),
	}
	if parent == "" {
		spec.Namespace = ns
		spec.Visibility = visibility(mods, "internal")
	} else {
		spec.DeclaringType = parent
		spec.Visibility = visibility(mods, "private")
	}

	if n.Type() == "delegate_declaration" {
		spec.Sealed = true
		spec.Base = "System.Delegate"
		p.file.Types = append(p.file.Types, spec)
		return
	}

	bases := p.baseList(n)
	if kind != "enum" {
		spec.Interfaces = bases
	}

	key := ownName(name, spec.Generics)
	switch {
	case parent != "":
		key = parent + "+" + key
	case ns != "":
		key = ns + "." + key
	}

	idx := len(p.file.Types)
	p.file.Types = append(p.file.Types, spec)

	b := body(n)
	if b == nil {
		return
	}
	var members []metadata.MemberSpec
	for i := 0; i < int(b.NamedChildCount()); i++ {
		c := b.NamedChild(i)
		if typeKinds[c.Type()] != "" {
			p.typeDecl(c, ns, key)
			continue
		}
		members = append(members, p.members(c, kind)...)
	}
	p.file.Types[idx].Members = members
}

// members extracts the members declared by n inside a type of kind.
func (p *parser) members(n *sitter.Node, kind string) []metadata.MemberSpec {
	mods := p.modifiers(n)
	def := "private"
	if kind == "interface" || kind == "enum" {
		def = "public"
	}
	m := metadata.MemberSpec{
		Visibility: visibility(mods, def),
		Static:     mods["static"] || mods["const"],
		Abstract:   mods["abstract"] || (kind == "interface" && !mods["static"]),
		Doc:        p.docComment(n),
	}

	switch n.Type() {
	case "method_declaration":
		m.Kind = "method"
		m.Name = p.name(n)
		m.Generics = p.typeParams(n)
		ret := n.ChildByFieldName("returns")
		if ret == nil {
			ret = n.ChildByFieldName("type")
		}
		m.Type, _ = p.typeRef(ret)
		m.Parameters = p.parameters(n)
	case "constructor_declaration":
		if mods["static"] {
			return nil
		}
		m.Kind = "constructor"
		m.Name = p.name(n)
		m.Parameters = p.parameters(n)
	case "property_declaration":
		m.Kind = "property"
		m.Name = p.name(n)
		m.Type, _ = p.typeRef(n.ChildByFieldName("type"))
	case "event_declaration":
		m.Kind = "event"
		m.Name = p.name(n)
		m.Type, _ = p.typeRef(n.ChildByFieldName("type"))
	case "field_declaration", "event_field_declaration":
		m.Kind = "field"
		if n.Type() == "event_field_declaration" {
			m.Kind = "event"
		}
		return p.variables(n, m)
	case "enum_member_declaration":
		m.Kind = "field"
		m.Name = p.name(n)
		m.Value = p.enumValue(n)
	default:
		return nil
	}
	return []metadata.MemberSpec{m}
}

// variables expands a field or event field declaration into one member
// per declared variable.
func (p *parser) variables(n *sitter.Node, proto metadata.MemberSpec) []metadata.MemberSpec {
	var decl *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "variable_declaration" {
			decl = c
			break
		}
	}
	if decl == nil {
		return nil
	}
	typ, _ := p.typeRef(decl.ChildByFieldName("type"))
	var out []metadata.MemberSpec
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		c := decl.NamedChild(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		m := proto
		m.Name = p.name(c)
		m.Type = typ
		out = append(out, m)
	}
	return out
}

func (p *parser) enumValue(n *sitter.Node) string {
	if v := n.ChildByFieldName("value"); v != nil {
		return p.text(v)
	}
	named := false
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch {
		case c.Type() == "equals_value_clause" && c.NamedChildCount() > 0:
			return p.text(c.NamedChild(0))
		case c.Type() == "attribute_list":
		case !named:
			named = true
		default:
			return p.text(c)
		}
	}
	return ""
}

func (p *parser) parameters(n *sitter.Node) []metadata.ParamSpec {
	list := n.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}
	var out []metadata.ParamSpec
	for i := 0; i < int(list.NamedChildCount()); i++ {
		c := list.NamedChild(i)
		if c.Type() != "parameter" {
			continue
		}
		typ, ok := p.typeRef(c.ChildByFieldName("type"))
		if !ok {
			typ = "object"
		}
		out = append(out, metadata.ParamSpec{Name: p.name(c), Type: typ})
	}
	return out
}

// usingsQuery captures the using directives of a file.
const usingsQuery = `(using_directive) @using`

// usings returns the namespaces imported by plain using directives.
// Aliases and static imports are skipped.
func usings(root *sitter.Node, src []byte) []string {
	q, err := sitter.NewQuery([]byte(usingsQuery), csharp.GetLanguage())
	if err != nil {
		return nil
	}
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	seen := make(map[string]bool)
	var out []string
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			text := strings.TrimSuffix(strings.TrimSpace(c.Node.Content(src)), ";")
			fields := strings.Fields(text)
			if len(fields) > 0 && fields[0] == "global" {
				fields = fields[1:]
			}
			if len(fields) != 2 || fields[0] != "using" || strings.Contains(fields[1], "=") {
				continue
			}
			ns := fields[1]
			if !seen[ns] {
				seen[ns] = true
				out = append(out, ns)
			}
		}
	}
	return out
}
