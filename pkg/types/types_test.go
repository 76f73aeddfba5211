// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibility_Print(t *testing.T) {
	tests := []struct {
		name string
		v    Visibility
		want string
	}{
		{name: "none", v: VisibilityNone, want: ""},
		{name: "public", v: Public, want: "public"},
		{name: "internal", v: Internal, want: "internal"},
		{name: "protected", v: Protected, want: "protected"},
		{name: "protected internal", v: ProtectedInternal, want: "protected internal"},
		{name: "private", v: Private, want: "private"},
		{name: "out of range", v: Visibility(42), want: ""},
		{name: "negative", v: Visibility(-1), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Print())
		})
	}
}

func TestParseVisibility(t *testing.T) {
	for _, v := range []Visibility{Public, Internal, Protected, ProtectedInternal, Private} {
		t.Run(v.Print(), func(t *testing.T) {
			assert.Equal(t, v, ParseVisibility(v.Print()))
		})
	}
	assert.Equal(t, ProtectedInternal, ParseVisibility("internal protected"))
	assert.Equal(t, VisibilityNone, ParseVisibility(""))
	assert.Equal(t, VisibilityNone, ParseVisibility("friend"))
}

func TestKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{in: "class", want: Class, ok: true},
		{in: "record", want: Class, ok: true},
		{in: "interface", want: Interface, ok: true},
		{in: "enum", want: Enum, ok: true},
		{in: "record struct", want: Struct, ok: true},
		{in: "module", want: Class, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestMemberKind(t *testing.T) {
	for _, k := range []MemberKind{Property, Constructor, Method, Event, Field} {
		got, ok := ParseMemberKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	got, ok := ParseMemberKind("ctor")
	assert.True(t, ok)
	assert.Equal(t, Constructor, got)
	_, ok = ParseMemberKind("indexer")
	assert.False(t, ok)
}

func TestText_Plain(t *testing.T) {
	text := Text{{Text: " Wraps a "}, {Cref: "T:Acme.Gear"}, {Text: ". "}}
	assert.Equal(t, "Wraps a Acme.Gear.", text.Plain())
	assert.False(t, text.IsEmpty())
	assert.True(t, Text{{Text: "  "}}.IsEmpty())
}
