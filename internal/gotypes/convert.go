// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gotypes

import (
	"encoding/xml"
	"go/doc"
	gotypes "go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/petar-djukic/go-typedoc/internal/metadata"
)

// builtinNamespace holds predeclared types and the type constructors
// that have no name of their own.
const builtinNamespace = "builtin"

// converter turns go/types objects into type specs. ifaces holds the
// named interfaces of the loaded packages, checked for implementation.
type converter struct {
	ifaces     []*gotypes.Named
	unexported bool
}

func newConverter(pkgs []*packages.Package, unexported bool) *converter {
	c := &converter{unexported: unexported}
	for _, p := range pkgs {
		scope := p.Types.Scope()
		for _, n := range scope.Names() {
			tn, ok := scope.Lookup(n).(*gotypes.TypeName)
			if !ok || tn.IsAlias() || !c.include(tn.Exported()) {
				continue
			}
			named, ok := tn.Type().(*gotypes.Named)
			if !ok || named.TypeParams().Len() > 0 {
				continue
			}
			if iface, ok := named.Underlying().(*gotypes.Interface); ok && iface.NumMethods() > 0 {
				c.ifaces = append(c.ifaces, named)
			}
		}
	}
	return c
}

func (c *converter) include(exported bool) bool {
	return exported || c.unexported
}

func visibility(exported bool) string {
	if exported {
		return "public"
	}
	return "internal"
}

// packageSpecs returns the specs of the types documented in dp.
func (c *converter) packageSpecs(p *packages.Package, dp *doc.Package) []metadata.TypeSpec {
	ns := Namespace(p.PkgPath)
	scope := p.Types.Scope()
	var specs []metadata.TypeSpec
	for _, dt := range dp.Types {
		tn, ok := scope.Lookup(dt.Name).(*gotypes.TypeName)
		if !ok || tn.IsAlias() || !c.include(tn.Exported()) {
			continue
		}
		named, ok := tn.Type().(*gotypes.Named)
		if !ok {
			continue
		}
		specs = append(specs, c.typeSpec(ns, dp, dt, named, scope))
	}
	return specs
}

func (c *converter) typeSpec(ns string, dp *doc.Package, dt *doc.Type, named *gotypes.Named, scope *gotypes.Scope) metadata.TypeSpec {
	obj := named.Obj()
	spec := metadata.TypeSpec{
		Namespace:  ns,
		Name:       obj.Name(),
		Kind:       "class",
		Visibility: visibility(obj.Exported()),
	}
	spec.Summary, spec.Doc = docText(dp, dt.Doc)

	tparams := named.TypeParams()
	for i := 0; i < tparams.Len(); i++ {
		spec.Generics = append(spec.Generics, tparams.At(i).Obj().Name())
	}

	consts := c.enumValues(dt, scope)
	switch u := named.Underlying().(type) {
	case *gotypes.Interface:
		spec.Kind = "interface"
		for i := 0; i < u.NumEmbeddeds(); i++ {
			if e, ok := gotypes.Unalias(u.EmbeddedType(i)).(*gotypes.Named); ok {
				spec.Interfaces = append(spec.Interfaces, c.ref(e, nil))
			}
		}
		for i := 0; i < u.NumExplicitMethods(); i++ {
			m := u.ExplicitMethod(i)
			if !c.include(m.Exported()) {
				continue
			}
			ms := c.method(m, nil)
			ms.Abstract = true
			ms.Summary, ms.Doc = docText(dp, methodDoc(dt, m.Name()))
			spec.Members = append(spec.Members, ms)
		}
		return spec
	case *gotypes.Struct:
		spec.Kind = "struct"
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if !c.include(f.Exported()) {
				continue
			}
			spec.Members = append(spec.Members, metadata.MemberSpec{
				Kind:       "field",
				Name:       f.Name(),
				Visibility: visibility(f.Exported()),
				Type:       c.ref(f.Type(), nil),
			})
		}
	case *gotypes.Basic:
		if len(consts) > 0 {
			spec.Kind = "enum"
			spec.Members = consts
			return spec
		}
	}

	if tparams.Len() == 0 {
		for _, iface := range c.ifaces {
			if iface.Obj() == obj {
				continue
			}
			it := iface.Underlying().(*gotypes.Interface)
			if gotypes.Implements(named, it) || gotypes.Implements(gotypes.NewPointer(named), it) {
				spec.Interfaces = append(spec.Interfaces, c.ref(iface, nil))
			}
		}
	}

	for _, f := range dt.Funcs {
		fn, ok := scope.Lookup(f.Name).(*gotypes.Func)
		if !ok || !c.include(fn.Exported()) {
			continue
		}
		ms := c.method(fn, nil)
		ms.Static = true
		ms.Summary, ms.Doc = docText(dp, f.Doc)
		spec.Members = append(spec.Members, ms)
	}
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if !c.include(m.Exported()) {
			continue
		}
		ms := c.method(m, receiverNames(m, tparams))
		ms.Summary, ms.Doc = docText(dp, methodDoc(dt, m.Name()))
		spec.Members = append(spec.Members, ms)
	}
	return spec
}

// enumValues returns the constants declared with the type as fields.
func (c *converter) enumValues(dt *doc.Type, scope *gotypes.Scope) []metadata.MemberSpec {
	var out []metadata.MemberSpec
	for _, v := range dt.Consts {
		for _, n := range v.Names {
			k, ok := scope.Lookup(n).(*gotypes.Const)
			if !ok || !c.include(k.Exported()) {
				continue
			}
			out = append(out, metadata.MemberSpec{
				Kind:       "field",
				Name:       n,
				Visibility: visibility(k.Exported()),
				Value:      k.Val().ExactString(),
			})
		}
	}
	return out
}

// method converts a function or method. The first result becomes the
// member type; later results are not represented.
func (c *converter) method(fn *gotypes.Func, rename map[string]string) metadata.MemberSpec {
	sig := fn.Type().(*gotypes.Signature)
	ms := metadata.MemberSpec{
		Kind:       "method",
		Name:       fn.Name(),
		Visibility: visibility(fn.Exported()),
	}
	if sig.Results().Len() > 0 {
		ms.Type = c.ref(sig.Results().At(0).Type(), rename)
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		name := p.Name()
		if name == "" || name == "_" {
			name = "arg" + strconv.Itoa(i)
		}
		ms.Parameters = append(ms.Parameters, metadata.ParamSpec{Name: name, Type: c.ref(p.Type(), rename)})
	}
	return ms
}

// receiverNames maps the type parameter names a method receiver uses to
// the names the type declares.
func receiverNames(m *gotypes.Func, declared *gotypes.TypeParamList) map[string]string {
	recv := m.Type().(*gotypes.Signature).RecvTypeParams()
	if recv == nil || recv.Len() != declared.Len() {
		return nil
	}
	rename := make(map[string]string, recv.Len())
	for i := 0; i < recv.Len(); i++ {
		rename[recv.At(i).Obj().Name()] = declared.At(i).Obj().Name()
	}
	return rename
}

// ref spells t in the reference grammar the Builder parses. Types
// without a declaring package live in the builtin namespace.
func (c *converter) ref(t gotypes.Type, rename map[string]string) string {
	switch t := gotypes.Unalias(t).(type) {
	case *gotypes.Basic:
		return builtinNamespace + "." + strings.TrimPrefix(t.Name(), "untyped ")
	case *gotypes.Named:
		obj := t.Obj()
		base := builtinNamespace + "." + obj.Name()
		if obj.Pkg() != nil {
			base = Namespace(obj.Pkg().Path()) + "." + obj.Name()
		}
		args := t.TypeArgs()
		if args.Len() == 0 {
			return base
		}
		parts := make([]string, args.Len())
		for i := 0; i < args.Len(); i++ {
			parts[i] = c.ref(args.At(i), rename)
		}
		return base + "<" + strings.Join(parts, ", ") + ">"
	case *gotypes.TypeParam:
		name := t.Obj().Name()
		if r, ok := rename[name]; ok {
			return r
		}
		return name
	case *gotypes.Pointer:
		return c.ref(t.Elem(), rename) + "*"
	case *gotypes.Slice:
		return c.ref(t.Elem(), rename) + "[]"
	case *gotypes.Array:
		return c.ref(t.Elem(), rename) + "[]"
	case *gotypes.Map:
		return builtinNamespace + ".map<" + c.ref(t.Key(), rename) + ", " + c.ref(t.Elem(), rename) + ">"
	case *gotypes.Chan:
		return builtinNamespace + ".chan<" + c.ref(t.Elem(), rename) + ">"
	case *gotypes.Signature:
		return builtinNamespace + ".func"
	case *gotypes.Struct:
		return builtinNamespace + ".struct"
	default:
		return builtinNamespace + ".any"
	}
}

func methodDoc(dt *doc.Type, name string) string {
	for _, m := range dt.Methods {
		if m.Name == name {
			return m.Doc
		}
	}
	return ""
}

// docText splits a doc comment into its synopsis and, when the comment
// says more, a documentation block with the rest as remarks.
func docText(dp *doc.Package, text string) (summary, block string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}
	summary = dp.Synopsis(text)
	rest := strings.TrimSpace(strings.TrimPrefix(text, summary))
	if rest == "" || !strings.HasPrefix(text, summary) {
		return summary, ""
	}
	var b strings.Builder
	b.WriteString("<summary>")
	_ = xml.EscapeText(&b, []byte(summary))
	b.WriteString("</summary><remarks>")
	_ = xml.EscapeText(&b, []byte(rest))
	b.WriteString("</remarks>")
	return summary, b.String()
}
