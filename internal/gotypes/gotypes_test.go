// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gotypes

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-typedoc/internal/symbol"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

const shapesSource = `package shapes

// Shape is anything with an area.
type Shape interface {
	// Area returns the area.
	Area() float64
}

// Circle is a round shape.
//
// Circles are measured by radius.
type Circle struct {
	Radius float64
	hidden int
}

// NewCircle returns a circle.
func NewCircle(r float64) *Circle { return &Circle{Radius: r} }

// Area returns the area.
func (c *Circle) Area() float64 { return 3 * c.Radius * c.Radius }

// Colour is a paint colour.
type Colour int

const (
	Red Colour = iota
	Blue
)

// Stack is a last-in first-out list.
type Stack[T any] struct{ items []T }

// Push adds an item.
func (s *Stack[E]) Push(v E) { s.items = append(s.items, v) }

// Lookup returns the items by key.
func (s *Stack[E]) Lookup(keys []string) map[string]E { return nil }

type unexported struct{}
`

func writeModule(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/shapes\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes.go"), []byte(shapesSource), 0o644))
	return dir
}

func loadShapes(t *testing.T) (*types.Artifact, *symbol.Registry) {
	t.Helper()
	a, err := Load(context.Background(), writeModule(t), Options{Artifact: "shapes"})
	require.NoError(t, err)
	reg := symbol.NewRegistry()
	_, err = reg.Register(a.Types)
	require.NoError(t, err)
	return a, reg
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "fmt", want: "fmt"},
		{in: "example.com/shapes", want: "example.com.shapes"},
		{in: "github.com/go-git/go-git/v5", want: "github.com.go_git.go_git.v5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespace(tt.in))
		})
	}
}

func TestLoad_Types(t *testing.T) {
	a, reg := loadShapes(t)
	assert.Equal(t, "shapes", a.Name)

	tests := []struct {
		id      string
		kind    types.Kind
		display string
	}{
		{id: "example.com.shapes.Shape", kind: types.Interface, display: "Shape"},
		{id: "example.com.shapes.Circle", kind: types.Struct, display: "Circle"},
		{id: "example.com.shapes.Colour", kind: types.Enum, display: "Colour"},
		{id: "example.com.shapes.Stack-1", kind: types.Struct, display: "Stack<T>"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, ok := reg.Get(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.kind, s.Descriptor().Kind())
			name, err := s.DisplayName()
			require.NoError(t, err)
			assert.Equal(t, tt.display, name)
		})
	}

	_, ok := reg.Get("example.com.shapes.unexported")
	assert.False(t, ok)
}

func TestLoad_Members(t *testing.T) {
	_, reg := loadShapes(t)

	circle, ok := reg.Get("example.com.shapes.Circle")
	require.True(t, ok)
	ifaces, err := circle.Interfaces()
	require.NoError(t, err)
	require.Len(t, ifaces, 1)
	assert.Equal(t, "example.com.shapes.Shape", ifaces[0].Identifier())

	var names []string
	for _, m := range circle.Descriptor().Members() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Radius", "NewCircle", "Area"}, names)
	ctor := circle.Descriptor().Members()[1]
	assert.True(t, ctor.Static)
	assert.Equal(t, "*", ctor.TypeSuffix)

	colour, ok := reg.Get("example.com.shapes.Colour")
	require.True(t, ok)
	fields := colour.Descriptor().Members()
	require.Len(t, fields, 2)
	assert.Equal(t, "Blue", fields[1].Name)
	assert.Equal(t, "1", fields[1].Value)

	stack, ok := reg.Get("example.com.shapes.Stack-1")
	require.True(t, ok)
	members := stack.Descriptor().Members()
	require.Len(t, members, 2)
	push := members[1]
	if push.Name != "Push" {
		push = members[0]
	}
	require.Len(t, push.Parameters, 1)
	assert.True(t, push.Parameters[0].Type.IsGenericParameter())
	assert.Equal(t, "T", push.Parameters[0].Type.Name())

	lookup := members[0]
	if lookup.Name != "Lookup" {
		lookup = members[1]
	}
	ret, err := reg.Resolve(lookup.Type).DisplayName()
	require.NoError(t, err)
	assert.Equal(t, "map<string, T>", ret)
}

func TestLoad_Comments(t *testing.T) {
	a, _ := loadShapes(t)

	doc, ok := a.Comments.Lookup("T:example.com.shapes.Circle")
	require.True(t, ok)
	assert.Equal(t, "Circle is a round shape.", doc.Summary.Plain())
	assert.Equal(t, "Circles are measured by radius.", doc.Remarks.Plain())

	doc, ok = a.Comments.Lookup("T:example.com.shapes.Shape")
	require.True(t, ok)
	assert.Equal(t, "Shape is anything with an area.", doc.Summary.Plain())
}

func TestLoad_NoPackages(t *testing.T) {
	dir := writeModule(t)
	_, err := Load(context.Background(), dir, Options{Patterns: []string{"./missing/..."}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPackages), "got %v", err)
}
