// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import "sort"

// Table is a read-only snapshot of registered symbols indexed by
// namespace and artifact. Build it after registration finishes.
type Table struct {
	symbols     []*TypeSymbol
	byNamespace map[string][]int
	byArtifact  map[string][]int
}

// BuildTable indexes the given symbols. Placeholders are ignored.
func BuildTable(symbols []*TypeSymbol) *Table {
	t := &Table{
		byNamespace: make(map[string][]int),
		byArtifact:  make(map[string][]int),
	}
	for _, s := range symbols {
		if s.desc == nil {
			continue
		}
		idx := len(t.symbols)
		t.symbols = append(t.symbols, s)
		ns := NamespaceOf(s.desc)
		t.byNamespace[ns] = append(t.byNamespace[ns], idx)
		t.byArtifact[s.desc.Artifact()] = append(t.byArtifact[s.desc.Artifact()], idx)
	}
	return t
}

// ByNamespace returns the symbols declared in namespace.
func (t *Table) ByNamespace(ns string) []*TypeSymbol {
	return t.lookup(t.byNamespace[ns])
}

// ByArtifact returns the symbols loaded from the named artifact.
func (t *Table) ByArtifact(artifact string) []*TypeSymbol {
	return t.lookup(t.byArtifact[artifact])
}

// Namespaces returns the distinct namespaces, sorted.
func (t *Table) Namespaces() []string {
	return sortedKeys(t.byNamespace)
}

// Artifacts returns the distinct artifact names, sorted.
func (t *Table) Artifacts() []string {
	return sortedKeys(t.byArtifact)
}

// Len returns the total number of symbols.
func (t *Table) Len() int {
	return len(t.symbols)
}

func (t *Table) lookup(indices []int) []*TypeSymbol {
	if len(indices) == 0 {
		return nil
	}
	result := make([]*TypeSymbol, len(indices))
	for i, idx := range indices {
		result[i] = t.symbols[idx]
	}
	return result
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
