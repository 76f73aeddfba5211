// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the descriptor model shared across go-typedoc
// packages: the type descriptors produced by artifact loaders, their
// members, and the visibility vocabulary used when printing signatures.
package types

// Kind identifies the category of a documented type.
type Kind int

const (
	Class     Kind = iota // Reference type with optional base class
	Interface             // Contract type
	Enum                  // Named constant set
	Struct                // Value type
)

// String returns the keyword used for the kind in signatures.
func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Interface:
		return "interface"
	case Enum:
		return "enum"
	case Struct:
		return "struct"
	default:
		return "unknown"
	}
}

// ParseKind maps a manifest or source keyword to a Kind. Records map to
// Class, record structs to Struct.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "class", "record":
		return Class, true
	case "interface":
		return Interface, true
	case "enum":
		return Enum, true
	case "struct", "record struct":
		return Struct, true
	default:
		return Class, false
	}
}

// TypeDescriptor is an opaque handle to one declared type inside a binary
// artifact. Implementations are immutable once handed to the registry.
type TypeDescriptor interface {
	// Namespace returns the dotted namespace, or "" when the type has none.
	Namespace() string
	// Name returns the bare name, which may carry a "`N" arity suffix.
	Name() string
	// DeclaringType returns the enclosing type of a nested type, or nil.
	DeclaringType() TypeDescriptor
	// BaseType returns the base class, or nil.
	BaseType() TypeDescriptor
	// Interfaces returns the implemented interfaces in declaration order.
	Interfaces() []TypeDescriptor
	// GenericParameters returns the declared type parameters. Nested types
	// repeat the parameters of their declaring types first.
	GenericParameters() []TypeDescriptor
	// GenericArguments returns the type arguments of a constructed type.
	GenericArguments() []TypeDescriptor
	// IsGenericParameter reports whether the descriptor stands for a type
	// parameter such as T rather than a declared type.
	IsGenericParameter() bool

	Kind() Kind
	IsVisible() bool
	IsNested() bool
	IsNestedPrivate() bool
	IsAbstract() bool
	IsSealed() bool

	// Members returns the documented members of the type.
	Members() []Member
	// Artifact names the binary artifact the type was loaded from.
	Artifact() string
	// IsExternal reports whether the type belongs to a framework or
	// third-party artifact that is documented elsewhere.
	IsExternal() bool
}

// Artifact is the output of a descriptor source for one binary artifact.
type Artifact struct {
	Name     string           // Artifact name (assembly or module name)
	Path     string           // Input path the artifact was loaded from
	Types    []TypeDescriptor // Declared types in load order
	Comments CommentSource    // Structured comments; may be nil
}
