// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package symbol assigns documented types their identity, names, and
// page locations. A TypeSymbol wraps one descriptor; the Registry maps
// identifiers to symbols for a documentation run and resolves the types
// other pages refer to.
package symbol

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

var (
	// ErrNotTypeSymbol is returned when names or signatures are requested
	// from a placeholder that has no backing descriptor.
	ErrNotTypeSymbol = errors.New("not a type symbol")
	// ErrMalformedDescriptor is returned for descriptors that cannot be
	// placed: no namespace and no declaring type, or a generic parameter.
	ErrMalformedDescriptor = errors.New("malformed type descriptor")
	// ErrUnknownNamespace is returned when a descriptor's namespace has no
	// directory assigned.
	ErrUnknownNamespace = errors.New("namespace has no directory")
)

// TypeSymbol is a documented type: its descriptor, its page location, and
// its names. Names are computed on first use and cached.
type TypeSymbol struct {
	desc       types.TypeDescriptor
	identifier string
	directory  string
	fileStem   string
	documented bool
	registry   *Registry

	simplified lazy[string]
	display    lazy[string]
	postfix    lazy[string]
	visibility lazy[types.Visibility]
}

// NewTypeSymbol wraps a descriptor whose page lives at directory/fileStem.
// The registry resolves the types the symbol refers to; it may be nil.
func NewTypeSymbol(desc types.TypeDescriptor, directory, fileStem string, reg *Registry) (*TypeSymbol, error) {
	if desc == nil {
		return nil, errors.Wrap(ErrMalformedDescriptor, "nil descriptor")
	}
	if desc.IsGenericParameter() {
		return nil, errors.Wrapf(ErrMalformedDescriptor, "generic parameter %s", desc.Name())
	}
	if NamespaceOf(desc) == "" {
		return nil, errors.Wrapf(ErrMalformedDescriptor, "%s has no namespace and no declaring type", desc.Name())
	}
	return &TypeSymbol{
		desc:       desc,
		identifier: Identifier(desc),
		directory:  directory,
		fileStem:   fileStem,
		documented: true,
		registry:   reg,
	}, nil
}

// NewPlaceholder returns a symbol for a page that is not a type, such as
// the index. It has a location but no names.
func NewPlaceholder(identifier, directory, fileStem string) *TypeSymbol {
	return &TypeSymbol{
		identifier: identifier,
		directory:  directory,
		fileStem:   fileStem,
		documented: true,
	}
}

// reference wraps a descriptor that has no page of its own, or a
// constructed instance of one that does.
func reference(desc types.TypeDescriptor, reg *Registry, at *TypeSymbol) *TypeSymbol {
	s := &TypeSymbol{desc: desc, identifier: Identifier(desc), registry: reg}
	if at != nil {
		s.directory, s.fileStem, s.documented = at.directory, at.fileStem, at.documented
	}
	return s
}

// Identifier returns the registry key.
func (s *TypeSymbol) Identifier() string { return s.identifier }

// Descriptor returns the backing descriptor; nil for placeholders.
func (s *TypeSymbol) Descriptor() types.TypeDescriptor { return s.desc }

// Directory returns the page directory relative to the output root,
// separated by "/".
func (s *TypeSymbol) Directory() string { return s.directory }

// FileStem returns the page file name without extension.
func (s *TypeSymbol) FileStem() string { return s.fileStem }

// Path returns the page path relative to the output root.
func (s *TypeSymbol) Path() string {
	return path.Join(s.directory, s.fileStem+".md")
}

// IsDocumented reports whether the symbol has a page in this run.
func (s *TypeSymbol) IsDocumented() bool { return s.documented }

// IsWellDefined reports whether the symbol is a documented type, as
// opposed to a placeholder or an undocumented reference.
func (s *TypeSymbol) IsWellDefined() bool { return s.desc != nil && s.documented }

// IsExternal reports whether the type is documented outside this run.
func (s *TypeSymbol) IsExternal() bool { return s.desc != nil && s.desc.IsExternal() }

func (s *TypeSymbol) check() error {
	if s.desc == nil {
		return errors.Wrapf(ErrNotTypeSymbol, "%s", s.identifier)
	}
	return nil
}

func (s *TypeSymbol) resolve(desc types.TypeDescriptor) *TypeSymbol {
	if s.registry == nil {
		return reference(desc, nil, nil)
	}
	return s.registry.Resolve(desc)
}

// SimplifiedName returns the keyword alias for built-in types. Other
// generic types render their declared arity as a run of commas
// ("Dictionary<,>"); everything else uses the bare name.
func (s *TypeSymbol) SimplifiedName() (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.simplified.get(func() (string, error) {
		if a, ok := Alias(s.identifier); ok && len(s.desc.GenericArguments()) == 0 {
			return a, nil
		}
		name := s.desc.Name()
		if n := arity(name); n > 0 {
			return bareName(name) + "<" + strings.Repeat(",", n-1) + ">", nil
		}
		return name, nil
	})
}

// Visibility derives the type's visibility: public when visible outside
// the artifact, private when nested and hidden, none otherwise.
func (s *TypeSymbol) Visibility() (types.Visibility, error) {
	if err := s.check(); err != nil {
		return types.VisibilityNone, err
	}
	return s.visibility.get(func() (types.Visibility, error) {
		switch {
		case s.desc.IsVisible():
			return types.Public, nil
		case s.desc.IsNested() && s.desc.IsNestedPrivate():
			return types.Private, nil
		default:
			return types.VisibilityNone, nil
		}
	})
}

// DisplayName renders the type with its generic arguments in angle
// brackets ("Dictionary<string, int>"). Nested types whose generic
// parameters come partly from an enclosing type are qualified with the
// enclosing type's display name ("Outer<P1, P2>.Inner<Q>").
func (s *TypeSymbol) DisplayName() (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.display.get(s.displayName)
}

func (s *TypeSymbol) displayName() (string, error) {
	d := s.desc
	if d.IsGenericParameter() {
		return d.Name(), nil
	}
	if d.DeclaringType() == nil && len(d.GenericArguments()) == 0 {
		if a, ok := Alias(s.identifier); ok {
			return a, nil
		}
	}

	owned, prefix, err := s.ownedSpecifiers()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(bareName(d.Name()))
	if len(owned) > 0 {
		b.WriteByte('<')
		for i, t := range owned {
			if i > 0 {
				b.WriteString(", ")
			}
			name, err := s.resolve(t).DisplayName()
			if err != nil {
				return "", err
			}
			b.WriteString(name)
		}
		b.WriteByte('>')
	}
	return b.String(), nil
}

// ownedSpecifiers returns the generic parameters or arguments the type
// declares itself. When some come from enclosing types it also returns
// the enclosing type's display name plus "." as a prefix.
func (s *TypeSymbol) ownedSpecifiers() ([]types.TypeDescriptor, string, error) {
	d := s.desc
	decl := d.DeclaringType()

	if args := d.GenericArguments(); len(args) > 0 {
		if decl == nil {
			return args, "", nil
		}
		// Constructed nested types carry the enclosing arguments first.
		inherited := min(len(decl.GenericParameters()), len(args))
		if inherited == 0 {
			return args, "", nil
		}
		outer, err := s.resolve(instantiated{TypeDescriptor: decl, args: args[:inherited]}).DisplayName()
		if err != nil {
			return nil, "", err
		}
		return args[inherited:], outer + ".", nil
	}

	params := d.GenericParameters()
	if decl == nil || len(params) == 0 {
		return params, "", nil
	}
	inherited := make(map[string]bool)
	for p := decl; p != nil; p = p.DeclaringType() {
		for _, gp := range p.GenericParameters() {
			inherited[gp.Name()] = true
		}
	}
	owned := make([]types.TypeDescriptor, 0, len(params))
	for _, p := range params {
		if !inherited[p.Name()] {
			owned = append(owned, p)
		}
	}
	if len(owned) == len(params) {
		return owned, "", nil
	}
	outer, err := s.resolve(decl).DisplayName()
	if err != nil {
		return nil, "", err
	}
	return owned, outer + ".", nil
}

// instantiated presents a generic type definition as constructed with the
// given arguments.
type instantiated struct {
	types.TypeDescriptor
	args []types.TypeDescriptor
}

func (i instantiated) GenericParameters() []types.TypeDescriptor { return nil }
func (i instantiated) GenericArguments() []types.TypeDescriptor  { return i.args }

// Signature returns the display name, or with full set the declaration
// line: visibility, modifiers, kind keyword, display name, and the base
// type and interface list.
func (s *TypeSymbol) Signature(full bool) (string, error) {
	name, err := s.DisplayName()
	if err != nil {
		return "", err
	}
	if !full {
		return name, nil
	}

	vis, err := s.Visibility()
	if err != nil {
		return "", err
	}
	var parts []string
	if v := vis.Print(); v != "" {
		parts = append(parts, v)
	}
	switch s.desc.Kind() {
	case types.Class:
		switch {
		case s.desc.IsAbstract() && s.desc.IsSealed():
			parts = append(parts, "static")
		case s.desc.IsAbstract():
			parts = append(parts, "abstract")
		case s.desc.IsSealed():
			parts = append(parts, "sealed")
		}
		parts = append(parts, "class")
	case types.Interface:
		parts = append(parts, "interface")
	case types.Enum:
		parts = append(parts, "enum")
	case types.Struct:
		parts = append(parts, "struct")
	}
	parts = append(parts, name)

	postfix, err := s.SignaturePostfix()
	if err != nil {
		return "", err
	}
	if postfix != "" {
		parts = append(parts, postfix)
	}
	return strings.Join(parts, " "), nil
}

// SignaturePostfix returns ": Base, IFoo, IBar" for the type, or "" when
// there is nothing to list. The root object class is omitted and so are
// interfaces the base type already implements. Types from another
// namespace are qualified with it.
func (s *TypeSymbol) SignaturePostfix() (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.postfix.get(func() (string, error) {
		d := s.desc
		if d.Kind() == types.Enum {
			return "", nil
		}

		var listed []types.TypeDescriptor
		implied := make(map[string]bool)
		if base := d.BaseType(); base != nil && d.Kind() == types.Class {
			for _, i := range AllInterfaces(base) {
				implied[key(i)] = true
			}
			if Identifier(base) != RootObject {
				listed = append(listed, base)
			}
		}
		seen := make(map[string]bool)
		for _, i := range d.Interfaces() {
			k := key(i)
			if implied[k] || seen[k] {
				continue
			}
			seen[k] = true
			listed = append(listed, i)
		}
		if len(listed) == 0 {
			return "", nil
		}

		ns := NamespaceOf(d)
		names := make([]string, len(listed))
		for i, t := range listed {
			name, err := s.resolve(t).DisplayName()
			if err != nil {
				return "", err
			}
			if tns := NamespaceOf(t); tns != "" && tns != ns {
				name = tns + "." + name
			}
			names[i] = name
		}
		return ": " + strings.Join(names, ", "), nil
	})
}

// InheritanceHierarchy returns the symbol followed by its base types, most
// derived first.
func (s *TypeSymbol) InheritanceHierarchy() ([]*TypeSymbol, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	chain := []*TypeSymbol{s}
	for b := s.desc.BaseType(); b != nil; b = b.BaseType() {
		chain = append(chain, s.resolve(b))
	}
	return chain, nil
}

// Interfaces returns symbols for every interface the type implements.
func (s *TypeSymbol) Interfaces() ([]*TypeSymbol, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	all := AllInterfaces(s.desc)
	out := make([]*TypeSymbol, len(all))
	for i, d := range all {
		out[i] = s.resolve(d)
	}
	return out, nil
}

// ExternalURL returns the reference documentation URL for a type that is
// documented outside this run.
func (s *TypeSymbol) ExternalURL() (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	base := DefaultExternalDocsBase
	if s.registry != nil {
		base = s.registry.docsBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	id := strings.ToLower(strings.ReplaceAll(s.identifier, "+", "."))
	return base + "dotnet/api/" + id, nil
}
