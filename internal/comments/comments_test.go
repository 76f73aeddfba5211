// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package comments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

type stubType struct {
	ns, name string
	decl     *stubType
	params   []types.TypeDescriptor
	args     []types.TypeDescriptor
	param    bool
	kind     types.Kind
}

func (s *stubType) Namespace() string { return s.ns }
func (s *stubType) Name() string      { return s.name }
func (s *stubType) DeclaringType() types.TypeDescriptor {
	if s.decl == nil {
		return nil
	}
	return s.decl
}
func (s *stubType) BaseType() types.TypeDescriptor            { return nil }
func (s *stubType) Interfaces() []types.TypeDescriptor        { return nil }
func (s *stubType) GenericParameters() []types.TypeDescriptor { return s.params }
func (s *stubType) GenericArguments() []types.TypeDescriptor  { return s.args }
func (s *stubType) IsGenericParameter() bool                  { return s.param }
func (s *stubType) Kind() types.Kind                          { return s.kind }
func (s *stubType) IsVisible() bool                           { return true }
func (s *stubType) IsNested() bool                            { return s.decl != nil }
func (s *stubType) IsNestedPrivate() bool                     { return false }
func (s *stubType) IsAbstract() bool                          { return false }
func (s *stubType) IsSealed() bool                            { return false }
func (s *stubType) Members() []types.Member                   { return nil }
func (s *stubType) Artifact() string                          { return "" }
func (s *stubType) IsExternal() bool                          { return false }

func TestMemberID(t *testing.T) {
	tParam := &stubType{name: "T", param: true}
	uParam := &stubType{name: "U", param: true}
	intT := &stubType{ns: "System", name: "Int32", kind: types.Struct}
	strT := &stubType{ns: "System", name: "String"}
	list := &stubType{ns: "System.Collections.Generic", name: "List`1", args: []types.TypeDescriptor{tParam}}

	box := &stubType{ns: "Acme", name: "Box`1", params: []types.TypeDescriptor{tParam}}
	inner := &stubType{name: "Lid", decl: box, params: []types.TypeDescriptor{tParam}}

	tests := []struct {
		name   string
		owner  types.TypeDescriptor
		member types.Member
		want   string
	}{
		{name: "property", owner: box, member: types.Member{Kind: types.Property, Name: "Count"}, want: "P:Acme.Box`1.Count"},
		{name: "field", owner: box, member: types.Member{Kind: types.Field, Name: "Empty"}, want: "F:Acme.Box`1.Empty"},
		{name: "event", owner: box, member: types.Member{Kind: types.Event, Name: "Changed"}, want: "E:Acme.Box`1.Changed"},
		{name: "default ctor", owner: box, member: types.Member{Kind: types.Constructor}, want: "M:Acme.Box`1.#ctor"},
		{
			name:  "ctor with parameters",
			owner: box,
			member: types.Member{Kind: types.Constructor, Parameters: []types.Parameter{
				{Name: "value", Type: tParam}, {Name: "size", Type: intT},
			}},
			want: "M:Acme.Box`1.#ctor(`0,System.Int32)",
		},
		{
			name:  "generic method",
			owner: box,
			member: types.Member{Kind: types.Method, Name: "Map", TypeParams: []types.TypeDescriptor{uParam}, Parameters: []types.Parameter{
				{Name: "items", Type: list}, {Name: "seed", Type: uParam},
			}},
			want: "M:Acme.Box`1.Map``1(System.Collections.Generic.List{`0},``0)",
		},
		{
			name:  "array and nullable",
			owner: box,
			member: types.Member{Kind: types.Method, Name: "Fill", Parameters: []types.Parameter{
				{Name: "names", Type: strT, Suffix: "[]"}, {Name: "limit", Type: intT, Suffix: "?"},
			}},
			want: "M:Acme.Box`1.Fill(System.String[],System.Nullable{System.Int32})",
		},
		{name: "nested owner", owner: inner, member: types.Member{Kind: types.Method, Name: "Open"}, want: "M:Acme.Box`1.Lid.Open"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MemberID(tt.owner, tt.member))
		})
	}

	assert.Equal(t, "T:Acme.Box`1.Lid", TypeID(inner))
}

const sampleXML = `<?xml version="1.0"?>
<doc>
    <assembly>
        <name>Acme.Widgets</name>
    </assembly>
    <members>
        <member name="T:Acme.Widget">
            <summary>
            A widget that wraps a <see cref="T:Acme.Gear"/> and
            spins it.
            </summary>
            <remarks>Use <c>Spin</c> sparingly.<para>Second paragraph.</para></remarks>
        </member>
        <member name="M:Acme.Widget.Spin(System.Int32)">
            <summary>Spins <paramref name="times"/> times.</summary>
            <param name="times">How many turns.</param>
            <returns>The final angle.</returns>
            <exception cref="T:System.ArgumentException">Thrown when <paramref name="times"/> is negative.</exception>
        </member>
        <member name="P:Acme.Widget.IsReady">
            <value>True once <see langword="true"/> is observed.</value>
        </member>
    </members>
</doc>`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", f.Assembly)
	assert.Equal(t, 3, f.Len())

	doc, ok := f.Lookup("T:Acme.Widget")
	require.True(t, ok)
	assert.Equal(t, "A widget that wraps a Acme.Gear and spins it.", doc.Summary.Plain())
	require.Len(t, doc.Summary, 3)
	assert.Equal(t, "T:Acme.Gear", doc.Summary[1].Cref)
	assert.Equal(t, "Use `Spin` sparingly.\n\nSecond paragraph.", doc.Remarks.Plain())

	doc, ok = f.Lookup("M:Acme.Widget.Spin(System.Int32)")
	require.True(t, ok)
	assert.Equal(t, "Spins times times.", doc.Summary.Plain())
	assert.Equal(t, "How many turns.", doc.Params["times"])
	assert.Equal(t, "The final angle.", doc.Returns)
	require.Len(t, doc.Exceptions, 1)
	assert.Equal(t, "T:System.ArgumentException", doc.Exceptions[0].Cref)
	assert.Equal(t, "Thrown when times is negative.", doc.Exceptions[0].Text)

	doc, ok = f.Lookup("P:Acme.Widget.IsReady")
	require.True(t, ok)
	assert.Equal(t, "True once `true` is observed.", doc.Value)

	_, ok = f.Lookup("T:Acme.Missing")
	assert.False(t, ok)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<doc><members><member name="T:X"><summary>open</member></members></doc>`))
	assert.True(t, errors.Is(err, ErrMalformedComment))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Acme.Widgets.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestParseBlock(t *testing.T) {
	doc, err := ParseBlock(`<summary>Creates a box.</summary>
<typeparam name="T">Element type.</typeparam>`)
	require.NoError(t, err)
	assert.Equal(t, "Creates a box.", doc.Summary.Plain())
	assert.Equal(t, "Element type.", doc.TypeParams["T"])
}

func TestChain(t *testing.T) {
	first := Map{}
	first.Summary("T:A", "from first")
	second := Map{}
	second.Summary("T:A", "from second")
	second.Summary("T:B", "only second")

	c := Chain{nil, first, second}
	doc, ok := c.Lookup("T:A")
	require.True(t, ok)
	assert.Equal(t, "from first", doc.Summary.Plain())

	doc, ok = c.Lookup("T:B")
	require.True(t, ok)
	assert.Equal(t, "only second", doc.Summary.Plain())

	_, ok = c.Lookup("T:C")
	assert.False(t, ok)
}
