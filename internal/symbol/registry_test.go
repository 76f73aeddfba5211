// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/petar-djukic/go-typedoc/internal/nstree"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

func descs(ts ...*fakeType) []types.TypeDescriptor { return list(ts) }

func TestRegister_AssignsDirectories(t *testing.T) {
	reg := NewRegistry(WithLogger(zaptest.NewLogger(t)))

	outer := class("Acme.Core", "Outer`1")
	outer.params = []*fakeType{gp("T")}
	inner := class("", "Inner")
	inner.decl = outer
	inner.params = outer.params

	n, err := reg.Register(descs(
		class("Acme", "Root"),
		class("Acme.Core", "Engine"),
		class("Acme.Io", "Reader"),
		outer,
		inner,
	))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	tests := []struct {
		id   string
		dir  string
		stem string
	}{
		{id: "Acme.Root", dir: "Acme", stem: "Root"},
		{id: "Acme.Core.Engine", dir: "Acme/Core", stem: "Engine"},
		{id: "Acme.Io.Reader", dir: "Acme/Io", stem: "Reader"},
		{id: "Acme.Core.Outer-1", dir: "Acme/Core", stem: "Outer-1"},
		{id: "Acme.Core.Outer-1+Inner", dir: "Acme/Core", stem: "Outer-1.Inner"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, ok := reg.Get(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.dir, s.Directory())
			assert.Equal(t, tt.stem, s.FileStem())
			assert.True(t, s.IsWellDefined())
		})
	}
}

func TestRegister_DuplicatesDropped(t *testing.T) {
	reg := NewRegistry()

	first := class("Acme", "Widget")
	n, err := reg.Register(descs(first, class("Acme", "Widget")))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = reg.Register(descs(class("Acme", "Widget"), class("Acme", "Gadget")))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, reg.Len())

	s, ok := reg.Get("Acme.Widget")
	require.True(t, ok)
	assert.Same(t, first, s.Descriptor(), "first insert wins")
}

func TestRegister_SkipsUnplaceable(t *testing.T) {
	reg := NewRegistry()
	n, err := reg.Register(descs(&fakeType{name: "Loose", kind: types.Class}, gp("T"), class("Acme", "Kept")))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, reg.Len())
}

func TestRegister_MalformedNamespaceAbortsBatch(t *testing.T) {
	reg := NewRegistry()
	n, err := reg.Register(descs(class("Acme", "Good"), class("Acme..Bad", "Bad")))
	assert.True(t, errors.Is(err, nstree.ErrMalformedNamespace))
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, reg.Len(), "nothing from a failed batch is inserted")
}

func TestRegisterPlaceholder(t *testing.T) {
	reg := NewRegistry()
	assert.True(t, reg.RegisterPlaceholder("index", "", "index"))
	assert.False(t, reg.RegisterPlaceholder("index", "", "other"))

	s, ok := reg.Get("index")
	require.True(t, ok)
	assert.Equal(t, "index", s.FileStem())
	assert.Nil(t, s.Descriptor())
	assert.Empty(t, reg.Symbols(), "placeholders are not type symbols")
}

func TestResolve(t *testing.T) {
	reg := NewRegistry()
	list1 := class("Acme", "List`1")
	list1.params = []*fakeType{gp("T")}
	_, err := reg.Register(descs(list1))
	require.NoError(t, err)

	registered, _ := reg.Get("Acme.List-1")
	assert.Same(t, registered, reg.Resolve(list1))

	constructed := class("Acme", "List`1")
	constructed.args = []*fakeType{system("Int32")}
	got := reg.Resolve(constructed)
	assert.NotSame(t, registered, got)
	assert.Equal(t, registered.Path(), got.Path(), "constructed types link to their definition")
	name, err := got.DisplayName()
	require.NoError(t, err)
	assert.Equal(t, "List<int>", name)

	missing := reg.Resolve(class("Other", "Thing"))
	assert.False(t, missing.IsDocumented())
}

func TestSymbols_Sorted(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(descs(class("B", "Z"), class("A", "Y"), class("A", "X")))
	require.NoError(t, err)

	var ids []string
	for _, s := range reg.Symbols() {
		ids = append(ids, s.Identifier())
	}
	assert.Equal(t, []string{"A.X", "A.Y", "B.Z"}, ids)
}

// batch builds n distinct descriptors spread over a few namespaces.
func batch(prefix string, n int) []types.TypeDescriptor {
	out := make([]types.TypeDescriptor, n)
	for i := range out {
		out[i] = class(fmt.Sprintf("%s.Ns%d", prefix, i%5), fmt.Sprintf("Type%d", i))
	}
	return out
}

func TestRegister_ConcurrentWorkers(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		reg := NewRegistry()
		left, right := batch("Left", 40), batch("Right", 60)

		// Eight workers each register one of the two batches, possibly
		// several times, in random order.
		work := make([][]types.TypeDescriptor, 8)
		for i := range work {
			if r.Intn(2) == 0 {
				work[i] = left
			} else {
				work[i] = right
			}
		}
		work[0], work[1] = left, right

		var wg sync.WaitGroup
		counts := make([]int, len(work))
		errs := make([]error, len(work))
		for i := range work {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				counts[i], errs[i] = reg.Register(work[i])
			}(i)
		}
		wg.Wait()

		total := 0
		for i := range work {
			require.NoError(t, errs[i])
			total += counts[i]
		}
		assert.Equal(t, 100, reg.Len())
		assert.Equal(t, 100, total, "each identifier is inserted exactly once")
	}
}
