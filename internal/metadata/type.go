// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package metadata

import (
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// Type is the descriptor produced by the Builder. A constructed generic
// type points at its definition and carries only its arguments, so it
// sees the definition's base type and members once they are resolved.
// Types are immutable once Build returns.
type Type struct {
	def  *Type
	args []types.TypeDescriptor

	namespace  string
	name       string
	declaring  *Type
	base       types.TypeDescriptor
	interfaces []types.TypeDescriptor
	params     []types.TypeDescriptor
	isParam    bool
	kind       types.Kind
	visibility types.Visibility
	abstract   bool
	sealed     bool
	static     bool
	external   bool
	members    []types.Member
	artifact   string
}

var _ types.TypeDescriptor = (*Type)(nil)

// genericParameter returns the descriptor of a type parameter.
func genericParameter(name string) *Type {
	return &Type{name: name, isParam: true}
}

// construct returns an instance of a generic definition with args.
func (t *Type) construct(args []types.TypeDescriptor) *Type {
	return &Type{def: t.origin(), args: args}
}

func (t *Type) origin() *Type {
	if t.def != nil {
		return t.def
	}
	return t
}

func (t *Type) Namespace() string { return t.origin().namespace }
func (t *Type) Name() string      { return t.origin().name }

func (t *Type) DeclaringType() types.TypeDescriptor {
	if d := t.origin().declaring; d != nil {
		return d
	}
	return nil
}

// BaseType returns the base type. For a constructed type the
// definition's parameters are replaced with the type's arguments.
func (t *Type) BaseType() types.TypeDescriptor {
	base := t.origin().base
	if t.def == nil || base == nil {
		return base
	}
	return t.substitute(base)
}

func (t *Type) Interfaces() []types.TypeDescriptor {
	ifaces := t.origin().interfaces
	if t.def == nil || len(ifaces) == 0 {
		return ifaces
	}
	out := make([]types.TypeDescriptor, len(ifaces))
	for i, d := range ifaces {
		out[i] = t.substitute(d)
	}
	return out
}

// substitute replaces the definition's type parameters in d with the
// constructed type's arguments.
func (t *Type) substitute(d types.TypeDescriptor) types.TypeDescriptor {
	v, ok := d.(*Type)
	if !ok {
		return d
	}
	if v.isParam {
		for i, p := range t.def.params {
			if p == d && i < len(t.args) {
				return t.args[i]
			}
		}
		return d
	}
	if len(v.args) == 0 {
		return d
	}
	args := make([]types.TypeDescriptor, len(v.args))
	changed := false
	for i, a := range v.args {
		args[i] = t.substitute(a)
		changed = changed || args[i] != a
	}
	if !changed {
		return d
	}
	return v.construct(args)
}

func (t *Type) GenericParameters() []types.TypeDescriptor {
	if t.def != nil {
		return nil
	}
	return t.params
}

func (t *Type) GenericArguments() []types.TypeDescriptor { return t.args }
func (t *Type) IsGenericParameter() bool                 { return t.origin().isParam }
func (t *Type) Kind() types.Kind                         { return t.origin().kind }
func (t *Type) IsAbstract() bool                         { return t.origin().abstract || t.origin().static }
func (t *Type) IsSealed() bool                           { return t.origin().sealed || t.origin().static }
func (t *Type) Members() []types.Member                  { return t.origin().members }
func (t *Type) Artifact() string                         { return t.origin().artifact }
func (t *Type) IsExternal() bool                         { return t.origin().external }
func (t *Type) IsNested() bool                           { return t.origin().declaring != nil }

// IsVisible reports whether the type is public and every declaring type is
// too.
func (t *Type) IsVisible() bool {
	for d := t.origin(); d != nil; d = d.declaring {
		if d.visibility != types.Public {
			return false
		}
	}
	return true
}

func (t *Type) IsNestedPrivate() bool {
	o := t.origin()
	return o.declaring != nil && o.visibility == types.Private
}

// Visibility returns the declared visibility.
func (t *Type) Visibility() types.Visibility { return t.origin().visibility }
