// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package comments

import (
	"strconv"
	"strings"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// DocName returns the documentation-file name of a type: namespace,
// declaring types, and name joined with "." and arity suffixes kept
// ("Acme.Outer`1.Inner").
func DocName(d types.TypeDescriptor) string {
	if decl := d.DeclaringType(); decl != nil {
		return DocName(decl) + "." + d.Name()
	}
	if ns := d.Namespace(); ns != "" {
		return ns + "." + d.Name()
	}
	return d.Name()
}

// TypeID returns the member ID of a type ("T:Acme.Widget").
func TypeID(d types.TypeDescriptor) string {
	return "T:" + DocName(d)
}

// MemberID returns the member ID of a member of owner, following the
// documentation-file conventions: "#ctor" for constructors, "``N" for
// generic methods, and a parenthesised parameter type list.
func MemberID(owner types.TypeDescriptor, m types.Member) string {
	prefix := DocName(owner) + "."
	switch m.Kind {
	case types.Property:
		return "P:" + prefix + m.Name + paramList(owner, m)
	case types.Field:
		return "F:" + prefix + m.Name
	case types.Event:
		return "E:" + prefix + m.Name
	case types.Constructor:
		return "M:" + prefix + "#ctor" + paramList(owner, m)
	default:
		name := m.Name
		if n := len(m.TypeParams); n > 0 {
			name += "``" + strconv.Itoa(n)
		}
		return "M:" + prefix + name + paramList(owner, m)
	}
}

func paramList(owner types.TypeDescriptor, m types.Member) string {
	if len(m.Parameters) == 0 {
		return ""
	}
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = refName(p.Type, p.Suffix, owner, m.TypeParams)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// refName encodes a parameter type. Type parameters of the owner become
// "`i", those of the method "``i"; constructed types list their
// arguments in braces.
func refName(t types.TypeDescriptor, suffix string, owner types.TypeDescriptor, methodParams []types.TypeDescriptor) string {
	if t == nil {
		return "System.Object"
	}
	var name string
	switch {
	case t.IsGenericParameter():
		name = genericIndex(t.Name(), owner, methodParams)
	case len(t.GenericArguments()) > 0:
		base := DocName(t)
		if i := strings.LastIndexByte(base, '`'); i >= 0 {
			base = base[:i]
		}
		args := t.GenericArguments()
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = refName(a, "", owner, methodParams)
		}
		name = base + "{" + strings.Join(parts, ",") + "}"
	default:
		name = DocName(t)
	}

	for _, r := range suffix {
		switch r {
		case '?':
			if !t.IsGenericParameter() && (t.Kind() == types.Struct || t.Kind() == types.Enum) {
				name = "System.Nullable{" + name + "}"
			}
		case '[', ']':
		case '*':
			name += "*"
		}
	}
	return name + strings.Repeat("[]", strings.Count(suffix, "[]"))
}

func genericIndex(name string, owner types.TypeDescriptor, methodParams []types.TypeDescriptor) string {
	for i, p := range methodParams {
		if p.Name() == name {
			return "``" + strconv.Itoa(i)
		}
	}
	if owner != nil {
		for i, p := range owner.GenericParameters() {
			if p.Name() == name {
				return "`" + strconv.Itoa(i)
			}
		}
	}
	return name
}
