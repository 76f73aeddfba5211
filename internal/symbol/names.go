// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import (
	"strconv"
	"strings"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// RootObject is the identifier of the universal base class. It is never
// listed as a base type in signatures.
const RootObject = "System.Object"

// aliases maps the identifiers of built-in scalar and text types to their
// keyword spelling.
var aliases = map[string]string{
	"System.Void":    "void",
	"System.Object":  "object",
	"System.Boolean": "bool",
	"System.SByte":   "sbyte",
	"System.Byte":    "byte",
	"System.Int16":   "short",
	"System.UInt16":  "ushort",
	"System.Int32":   "int",
	"System.UInt32":  "uint",
	"System.Int64":   "long",
	"System.UInt64":  "ulong",
	"System.Single":  "float",
	"System.Double":  "double",
	"System.Decimal": "decimal",
	"System.Char":    "char",
	"System.String":  "string",
}

// Alias returns the keyword for a built-in type identifier.
func Alias(identifier string) (string, bool) {
	a, ok := aliases[identifier]
	return a, ok
}

var fileNameReplacer = strings.NewReplacer(
	"<", "{",
	">", "}",
	",", "",
	" ", "-",
	"`", "-",
)

// SafeFileName encodes a type name so it can be used as a file name.
func SafeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}

// NamespaceOf returns the namespace of a descriptor. Nested types report
// the namespace of their outermost declaring type when they carry none
// themselves.
func NamespaceOf(desc types.TypeDescriptor) string {
	for d := desc; d != nil; d = d.DeclaringType() {
		if ns := d.Namespace(); ns != "" {
			return ns
		}
	}
	return ""
}

// Identifier returns the stable key of a descriptor: the namespace and the
// bare name with backticks replaced by dashes. Nested types append their
// name to the declaring type's identifier with "+". Generic parameters
// have no identifier.
func Identifier(desc types.TypeDescriptor) string {
	if desc == nil || desc.IsGenericParameter() {
		return ""
	}
	name := strings.ReplaceAll(desc.Name(), "`", "-")
	if decl := desc.DeclaringType(); decl != nil {
		return Identifier(decl) + "+" + name
	}
	if ns := desc.Namespace(); ns != "" {
		return ns + "." + name
	}
	return name
}

// FileStem returns the file name, without extension, of the page for a
// descriptor. Nested types are prefixed with their declaring types.
func FileStem(desc types.TypeDescriptor) string {
	stem := SafeFileName(desc.Name())
	if decl := desc.DeclaringType(); decl != nil {
		return FileStem(decl) + "." + stem
	}
	return stem
}

// bareName strips the arity suffix from a type name.
func bareName(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}
	return name
}

// arity returns the generic arity encoded in a name's "`N" suffix.
func arity(name string) int {
	i := strings.IndexByte(name, '`')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return 0
	}
	return n
}

// key identifies a possibly constructed type: generic definitions and
// their instantiations with different arguments get different keys.
func key(desc types.TypeDescriptor) string {
	if desc.IsGenericParameter() {
		return "!" + desc.Name()
	}
	args := desc.GenericArguments()
	if len(args) == 0 {
		return Identifier(desc)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = key(a)
	}
	return Identifier(desc) + "[" + strings.Join(parts, ",") + "]"
}

// AllInterfaces returns every interface a type implements, directly, by
// interface inheritance, or through its base types. Order is discovery
// order, duplicates removed.
func AllInterfaces(desc types.TypeDescriptor) []types.TypeDescriptor {
	var out []types.TypeDescriptor
	seen := make(map[string]bool)
	var visit func(types.TypeDescriptor)
	visit = func(d types.TypeDescriptor) {
		for _, i := range d.Interfaces() {
			k := key(i)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, i)
			visit(i)
		}
	}
	for d := desc; d != nil; d = d.BaseType() {
		visit(d)
	}
	return out
}
