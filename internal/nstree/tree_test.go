// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package nstree

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectories(t *testing.T) {
	tests := []struct {
		name       string
		namespaces []string
		want       map[string]string
	}{
		{
			name:       "terminal with child nests",
			namespaces: []string{"A", "A.B"},
			want:       map[string]string{"A": "A", "A.B": "A/B"},
		},
		{
			name:       "siblings share parent directory",
			namespaces: []string{"A.B", "A.C"},
			want:       map[string]string{"A.B": "A/B", "A.C": "A/C"},
		},
		{
			name:       "single chain collapses",
			namespaces: []string{"Company.Product.Feature"},
			want:       map[string]string{"Company.Product.Feature": "Company.Product.Feature"},
		},
		{
			name:       "collapse above branch point",
			namespaces: []string{"Acme.Core.Io", "Acme.Core.Net"},
			want: map[string]string{
				"Acme.Core.Io":  "Acme.Core/Io",
				"Acme.Core.Net": "Acme.Core/Net",
			},
		},
		{
			name:       "textual prefix without segment boundary stays apart",
			namespaces: []string{"Foo", "FooBar"},
			want:       map[string]string{"Foo": "Foo", "FooBar": "FooBar"},
		},
		{
			name:       "duplicates collapse to one entry",
			namespaces: []string{"X.Y", "X.Y", "X.Y"},
			want:       map[string]string{"X.Y": "X.Y"},
		},
		{
			name:       "deep mixed tree",
			namespaces: []string{"A", "A.B.C", "A.B.D", "A.E.F.G"},
			want: map[string]string{
				"A":       "A",
				"A.B.C":   "A/B/C",
				"A.B.D":   "A/B/D",
				"A.E.F.G": "A/E.F.G",
			},
		},
		{
			name:       "prefix terminal inside chain",
			namespaces: []string{"Foo.Bar", "Foo.Bar.Baz.Qux"},
			want: map[string]string{
				"Foo.Bar":         "Foo.Bar",
				"Foo.Bar.Baz.Qux": "Foo.Bar/Baz.Qux",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := New(tt.namespaces...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.Directories())
			assert.Equal(t, len(tt.want), tree.Len())

			for ns, dir := range tt.want {
				got, ok := tree.Directory(ns)
				assert.True(t, ok, ns)
				assert.Equal(t, dir, got, ns)
			}
		})
	}
}

func TestAdd_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		ns   string
		want error
	}{
		{name: "empty", ns: "", want: ErrEmptyNamespace},
		{name: "leading dot", ns: ".A", want: ErrMalformedNamespace},
		{name: "trailing dot", ns: "A.", want: ErrMalformedNamespace},
		{name: "double dot", ns: "A..B", want: ErrMalformedNamespace},
		{name: "slash", ns: "A/B", want: ErrMalformedNamespace},
		{name: "backslash", ns: `A\B`, want: ErrMalformedNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := New()
			require.NoError(t, err)

			err = tree.Add(tt.ns)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, 0, tree.Len())
		})
	}
}

func TestNew_AbortsOnMalformed(t *testing.T) {
	_, err := New("A", "", "B")
	assert.ErrorIs(t, err, ErrEmptyNamespace)
}

func TestDirectory_Unknown(t *testing.T) {
	tree, err := New("A.B")
	require.NoError(t, err)

	_, ok := tree.Directory("A")
	assert.False(t, ok, "A is only a prefix")

	_, ok = tree.Directory("Z")
	assert.False(t, ok)
}

func TestEntries_Sorted(t *testing.T) {
	tree, err := New("B", "A.Y", "A.X")
	require.NoError(t, err)

	var got []string
	for _, e := range tree.Entries() {
		got = append(got, e.Namespace)
	}
	assert.Equal(t, []string{"A.X", "A.Y", "B"}, got)
}

func TestClear(t *testing.T) {
	tree, err := New("A", "B")
	require.NoError(t, err)
	tree.Clear()
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Entries())
}

// randomNamespaces builds namespaces over a small alphabet so prefixes and
// shared segments are common.
func randomNamespaces(r *rand.Rand, n int) []string {
	segments := []string{"A", "B", "C", "Ab", "Core", "Io"}
	out := make([]string, n)
	for i := range out {
		depth := 1 + r.Intn(4)
		parts := make([]string, depth)
		for j := range parts {
			parts[j] = segments[r.Intn(len(segments))]
		}
		out[i] = strings.Join(parts, ".")
	}
	return out
}

func TestDirectories_BijectiveAndOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		namespaces := randomNamespaces(r, 20)

		tree, err := New(namespaces...)
		require.NoError(t, err)
		dirs := tree.Directories()

		// Bijection: distinct namespaces never share a directory.
		seen := make(map[string]string, len(dirs))
		for ns, dir := range dirs {
			if other, dup := seen[dir]; dup {
				t.Fatalf("namespaces %q and %q share directory %q", ns, other, dir)
			}
			seen[dir] = ns
		}

		// Every namespace is present.
		for _, ns := range namespaces {
			assert.Contains(t, dirs, ns)
		}

		// Sub-namespaces nest strictly below a terminal parent.
		for ns, dir := range dirs {
			for other, otherDir := range dirs {
				if strings.HasPrefix(other, ns+".") {
					assert.True(t, strings.HasPrefix(otherDir, dir+"/"),
						"%q (%q) should nest under %q (%q)", other, otherDir, ns, dir)
				}
			}
		}

		// Insertion order does not matter.
		shuffled := append([]string(nil), namespaces...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		tree2, err := New(shuffled...)
		require.NoError(t, err)
		assert.Equal(t, dirs, tree2.Directories())
		assert.Equal(t, tree.Entries(), tree2.Entries())
	}
}
