// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/petar-djukic/go-typedoc/internal/symbol"
)

const widgetSource = `using System;
using System.Collections.Generic;
using Builder = System.Text.StringBuilder;

public class Loose
{
    public class Inner { }
}

namespace Acme.Widgets
{
    /// <summary>A widget.</summary>
    /// <typeparam name="T">Payload.</typeparam>
    public sealed class Widget<T> : WidgetBase, IEnumerable<T>, IDisposable
    {
        /// <summary>Creates a widget.</summary>
        public Widget(int size) { }

        static Widget() { }

        /// <summary>The size.</summary>
        public int Size { get; }

        public List<T> Items { get; }

        public event EventHandler Changed;

        private int count, total;

        /// <summary>Maps items.</summary>
        public IEnumerable<TOut> Map<TOut>(Func<T, TOut> selector) { return null; }

        public (int, int) Pair() { return (1, 2); }

        protected internal class Entry { }
    }

    public abstract class WidgetBase { }

    public enum Colour { Red, Blue = 4 }

    public interface IShape { double Area(); }

    public partial class Gadget
    {
        public int Id { get; set; }
    }
}
`

const gadgetSource = `namespace Acme.Widgets;

/// <summary>A gadget.</summary>
public partial class Gadget : IDisposable
{
    public void Dispose() { }
}
`

func TestParse(t *testing.T) {
	f, err := Parse(context.Background(), "Widget.cs", []byte(widgetSource))
	require.NoError(t, err)

	assert.Equal(t, []string{"System", "System.Collections.Generic"}, f.Usings)
	require.Len(t, f.Types, 8)

	loose, inner := f.Types[0], f.Types[1]
	assert.Equal(t, "Loose", loose.Name)
	assert.Empty(t, loose.Namespace)
	assert.Equal(t, "Loose", inner.DeclaringType)

	widget := f.Types[2]
	assert.Equal(t, "Widget", widget.Name)
	assert.Equal(t, "Acme.Widgets", widget.Namespace)
	assert.Equal(t, "class", widget.Kind)
	assert.Equal(t, "public", widget.Visibility)
	assert.True(t, widget.Sealed)
	assert.Equal(t, []string{"T"}, widget.Generics)
	assert.Equal(t, []string{"WidgetBase", "IEnumerable<T>", "IDisposable"}, widget.Interfaces)
	assert.Contains(t, widget.Doc, "<summary>A widget.</summary>")

	members := widget.Members
	require.Len(t, members, 8)
	assert.Equal(t, "constructor", members[0].Kind)
	assert.Equal(t, "int", members[0].Parameters[0].Type)
	assert.Equal(t, "property", members[1].Kind)
	assert.Equal(t, "Size", members[1].Name)
	assert.Equal(t, "List<T>", members[2].Type)
	assert.Equal(t, "event", members[3].Kind)
	assert.Equal(t, "EventHandler", members[3].Type)
	assert.Equal(t, "count", members[4].Name)
	assert.Equal(t, "total", members[5].Name)
	assert.Equal(t, "private", members[5].Visibility)

	mapper := members[6]
	assert.Equal(t, "method", mapper.Kind)
	assert.Equal(t, []string{"TOut"}, mapper.Generics)
	assert.Equal(t, "IEnumerable<TOut>", mapper.Type)
	assert.Equal(t, "Func<T, TOut>", mapper.Parameters[0].Type)
	assert.Equal(t, "object", members[7].Type)
	require.Len(t, f.Warnings, 1)
	assert.Contains(t, f.Warnings[0], "unsupported type")

	entry := f.Types[3]
	assert.Equal(t, "Acme.Widgets.Widget`1", entry.DeclaringType)
	assert.Equal(t, "protected internal", entry.Visibility)

	colour := f.Types[5]
	assert.Equal(t, "enum", colour.Kind)
	require.Len(t, colour.Members, 2)
	assert.Equal(t, "", colour.Members[0].Value)
	assert.Equal(t, "4", colour.Members[1].Value)

	shape := f.Types[6]
	require.Len(t, shape.Members, 1)
	assert.True(t, shape.Members[0].Abstract)
	assert.Equal(t, "public", shape.Members[0].Visibility)
	assert.Equal(t, "double", shape.Members[0].Type)
}

func TestParse_FileScopedNamespace(t *testing.T) {
	f, err := Parse(context.Background(), "Gadget.cs", []byte(gadgetSource))
	require.NoError(t, err)
	require.Len(t, f.Types, 1)
	assert.Equal(t, "Acme.Widgets", f.Types[0].Namespace)
	assert.Equal(t, []string{"IDisposable"}, f.Types[0].Interfaces)
	assert.Contains(t, f.Types[0].Doc, "A gadget.")
}

func TestParse_MalformedDocIsDropped(t *testing.T) {
	src := "namespace A {\n/// <summary>Unclosed\npublic class X { }\n}\n"
	f, err := Parse(context.Background(), "X.cs", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Types, 1)
	assert.Empty(t, f.Types[0].Doc)
	assert.NotEmpty(t, f.Warnings)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestExtractor_ScanDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"A.cs":                 widgetSource,
		"B.cs":                 gadgetSource,
		"notes.txt":            "not code",
		"bin/Debug/Out.cs":     "namespace Acme.Widgets { public class BinOnly { } }",
		"Generated/Ignored.cs": "namespace Acme.Widgets { public class Ignored { } }",
		".gitignore":           "# generated code\nGenerated/\n",
	})
	e := NewExtractor()

	files, failures, stats, err := e.ScanDir(context.Background(), dir, 2)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "A.cs"), files[0].Path)
	assert.Equal(t, 2, stats.FilesParsed)

	_, _, stats, err = e.ScanDir(context.Background(), dir, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CacheHits)
	assert.Equal(t, 0, stats.FilesParsed)
}

func TestExtractor_ScanDirErrors(t *testing.T) {
	_, _, _, err := NewExtractor().ScanDir(context.Background(), filepath.Join(t.TempDir(), "missing"), 1)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := writeTree(t, map[string]string{"A.cs": widgetSource})
	_, _, _, err = NewExtractor().ScanDir(ctx, dir, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractor_Load(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"A.cs": widgetSource,
		"B.cs": gadgetSource,
	})
	a, err := NewExtractor().Load(context.Background(), dir, Options{
		Artifact: "Acme.Widgets",
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", a.Name)
	require.Len(t, a.Types, 6)

	reg := symbol.NewRegistry()
	n, err := reg.Register(a.Types)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	widget, ok := reg.Get("Acme.Widgets.Widget-1")
	require.True(t, ok)
	sig, err := widget.Signature(true)
	require.NoError(t, err)
	assert.Equal(t, "public sealed class Widget<T> : WidgetBase, System.Collections.Generic.IEnumerable<T>, System.IDisposable", sig)

	entry, ok := reg.Get("Acme.Widgets.Widget-1+Entry")
	require.True(t, ok)
	name, err := entry.DisplayName()
	require.NoError(t, err)
	assert.Equal(t, "Widget<T>.Entry", name)

	gadget, ok := reg.Get("Acme.Widgets.Gadget")
	require.True(t, ok)
	assert.Len(t, gadget.Descriptor().Members(), 2)

	doc, ok := a.Comments.Lookup("T:Acme.Widgets.Widget`1")
	require.True(t, ok)
	assert.Equal(t, "A widget.", doc.Summary.Plain())
	assert.Equal(t, "Payload.", doc.TypeParams["T"])

	doc, ok = a.Comments.Lookup("M:Acme.Widgets.Widget`1.#ctor(System.Int32)")
	require.True(t, ok)
	assert.Equal(t, "Creates a widget.", doc.Summary.Plain())

	doc, ok = a.Comments.Lookup("T:Acme.Widgets.Gadget")
	require.True(t, ok)
	assert.Equal(t, "A gadget.", doc.Summary.Plain())
}

func TestExtractor_LoadDefaultsArtifactName(t *testing.T) {
	dir := writeTree(t, map[string]string{"Shapes/S.cs": "namespace S { public struct P { } }"})
	a, err := NewExtractor().Load(context.Background(), filepath.Join(dir, "Shapes"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Shapes", a.Name)
	require.Len(t, a.Types, 1)
}
