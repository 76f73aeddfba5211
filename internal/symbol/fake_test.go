// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import "github.com/petar-djukic/go-typedoc/pkg/types"

// fakeType is a hand-assembled descriptor for tests.
type fakeType struct {
	ns, name      string
	decl, base    *fakeType
	ifaces        []*fakeType
	params, args  []*fakeType
	param         bool
	kind          types.Kind
	visible       bool
	nestedPrivate bool
	abstract      bool
	sealed        bool
	external      bool
	artifact      string
}

func list(ts []*fakeType) []types.TypeDescriptor {
	if len(ts) == 0 {
		return nil
	}
	out := make([]types.TypeDescriptor, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func (f *fakeType) Namespace() string { return f.ns }
func (f *fakeType) Name() string      { return f.name }
func (f *fakeType) DeclaringType() types.TypeDescriptor {
	if f.decl == nil {
		return nil
	}
	return f.decl
}
func (f *fakeType) BaseType() types.TypeDescriptor {
	if f.base == nil {
		return nil
	}
	return f.base
}
func (f *fakeType) Interfaces() []types.TypeDescriptor        { return list(f.ifaces) }
func (f *fakeType) GenericParameters() []types.TypeDescriptor { return list(f.params) }
func (f *fakeType) GenericArguments() []types.TypeDescriptor  { return list(f.args) }
func (f *fakeType) IsGenericParameter() bool                  { return f.param }
func (f *fakeType) Kind() types.Kind                          { return f.kind }
func (f *fakeType) IsVisible() bool                           { return f.visible }
func (f *fakeType) IsNested() bool                            { return f.decl != nil }
func (f *fakeType) IsNestedPrivate() bool                     { return f.nestedPrivate }
func (f *fakeType) IsAbstract() bool                          { return f.abstract }
func (f *fakeType) IsSealed() bool                            { return f.sealed }
func (f *fakeType) Members() []types.Member                   { return nil }
func (f *fakeType) Artifact() string                          { return f.artifact }
func (f *fakeType) IsExternal() bool                          { return f.external }

func gp(name string) *fakeType { return &fakeType{name: name, param: true} }

func class(ns, name string) *fakeType {
	return &fakeType{ns: ns, name: name, kind: types.Class, visible: true, artifact: "Test"}
}

func iface(ns, name string) *fakeType {
	return &fakeType{ns: ns, name: name, kind: types.Interface, visible: true, artifact: "Test"}
}

func system(name string) *fakeType {
	return &fakeType{ns: "System", name: name, kind: types.Struct, visible: true, external: true, artifact: "System.Runtime"}
}
