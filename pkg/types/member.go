// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Visibility is the accessibility of a type or member.
type Visibility int

const (
	VisibilityNone Visibility = iota
	Public
	Internal
	Protected
	ProtectedInternal
	Private
)

// Print returns the keyword for the visibility. VisibilityNone and unknown
// values print as the empty string.
func (v Visibility) Print() string {
	switch v {
	case Public:
		return "public"
	case Internal:
		return "internal"
	case Protected:
		return "protected"
	case ProtectedInternal:
		return "protected internal"
	case Private:
		return "private"
	default:
		return ""
	}
}

// ParseVisibility maps a keyword back to a Visibility. Unknown keywords
// yield VisibilityNone.
func ParseVisibility(s string) Visibility {
	switch s {
	case "public":
		return Public
	case "internal":
		return Internal
	case "protected":
		return Protected
	case "protected internal", "internal protected":
		return ProtectedInternal
	case "private":
		return Private
	default:
		return VisibilityNone
	}
}

// MemberKind identifies the category of a type member.
type MemberKind int

const (
	Property MemberKind = iota
	Constructor
	Method
	Event
	Field
)

// String returns the member kind name.
func (k MemberKind) String() string {
	switch k {
	case Property:
		return "property"
	case Constructor:
		return "constructor"
	case Method:
		return "method"
	case Event:
		return "event"
	case Field:
		return "field"
	default:
		return "unknown"
	}
}

// ParseMemberKind maps a keyword to a MemberKind.
func ParseMemberKind(s string) (MemberKind, bool) {
	switch s {
	case "property":
		return Property, true
	case "constructor", "ctor":
		return Constructor, true
	case "method":
		return Method, true
	case "event":
		return Event, true
	case "field", "value":
		return Field, true
	default:
		return Property, false
	}
}

// Member is one documented member of a type.
type Member struct {
	Kind       MemberKind
	Name       string
	Visibility Visibility
	Static     bool
	Abstract   bool
	Type       TypeDescriptor   // Return, property, event, or field type; nil for void and constructors
	TypeSuffix string           // Array, nullable, or pointer suffix of Type ("[]", "?")
	Parameters []Parameter      // Method and constructor parameters
	TypeParams []TypeDescriptor // Generic method parameters
	Value      string           // Constant value for enum fields
}

// Parameter is one method or constructor parameter.
type Parameter struct {
	Name   string
	Type   TypeDescriptor
	Suffix string // Array, nullable, or pointer suffix of Type
}
