// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package metadata

import (
	"strings"
	"sync"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// FrameworkArtifact names the artifact built-in framework types belong to.
const FrameworkArtifact = "System.Runtime"

// keywords maps source keywords to framework type names.
var keywords = map[string]string{
	"void":    "System.Void",
	"object":  "System.Object",
	"dynamic": "System.Object",
	"bool":    "System.Boolean",
	"sbyte":   "System.SByte",
	"byte":    "System.Byte",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"nint":    "System.IntPtr",
	"nuint":   "System.UIntPtr",
	"float":   "System.Single",
	"double":  "System.Double",
	"decimal": "System.Decimal",
	"char":    "System.Char",
	"string":  "System.String",
}

// Framework holds the built-in framework types, keyed by full name with
// arity ("System.Collections.Generic.List`1"). It also resolves simple
// names that are unambiguous across the framework namespaces.
type Framework struct {
	byName  map[string]*Type
	byShort map[string]*Type
}

// Lookup returns the framework type with the given full name.
func (f *Framework) Lookup(fullName string) (*Type, bool) {
	t, ok := f.byName[fullName]
	return t, ok
}

// LookupShort returns the framework type with the given simple name.
func (f *Framework) LookupShort(name string) (*Type, bool) {
	t, ok := f.byShort[name]
	return t, ok
}

// Types returns every framework type.
func (f *Framework) Types() []*Type {
	out := make([]*Type, 0, len(f.byName))
	for _, t := range f.byName {
		out = append(out, t)
	}
	return out
}

var builtins = sync.OnceValue(buildFramework)

// Builtins returns the shared framework type set.
func Builtins() *Framework { return builtins() }

func buildFramework() *Framework {
	f := &Framework{byName: make(map[string]*Type), byShort: make(map[string]*Type)}
	ambiguous := make(map[string]bool)

	add := func(full string, kind types.Kind, base *Type, params []string, ifaces ...*Type) *Type {
		i := strings.LastIndexByte(full, '.')
		t := &Type{
			namespace:  full[:i],
			name:       full[i+1:],
			kind:       kind,
			visibility: types.Public,
			external:   true,
			artifact:   FrameworkArtifact,
		}
		if base != nil {
			t.base = base
		}
		for _, p := range params {
			t.params = append(t.params, genericParameter(p))
		}
		for _, it := range ifaces {
			t.interfaces = append(t.interfaces, it)
		}
		f.byName[full] = t
		if _, seen := f.byShort[t.name]; seen {
			ambiguous[t.name] = true
		}
		f.byShort[t.name] = t
		return t
	}
	// inst constructs a framework generic with the definition's own
	// parameters, as interface lists of generic definitions do.
	inst := func(def *Type, args ...types.TypeDescriptor) *Type {
		return def.construct(args)
	}

	object := add("System.Object", types.Class, nil, nil)
	valueType := add("System.ValueType", types.Class, object, nil)
	valueType.abstract = true
	enum := add("System.Enum", types.Class, valueType, nil)
	enum.abstract = true

	for _, name := range []string{
		"Boolean", "SByte", "Byte", "Int16", "UInt16", "Int32", "UInt32", "Int64", "UInt64",
		"IntPtr", "UIntPtr", "Single", "Double", "Decimal", "Char", "Guid", "DateTime",
		"DateTimeOffset", "TimeSpan", "Void",
	} {
		add("System."+name, types.Struct, valueType, nil)
	}

	disposable := add("System.IDisposable", types.Interface, nil, nil)
	add("System.IAsyncDisposable", types.Interface, nil, nil)
	add("System.IComparable", types.Interface, nil, nil)
	add("System.IComparable`1", types.Interface, nil, []string{"T"})
	add("System.IEquatable`1", types.Interface, nil, []string{"T"})
	add("System.ICloneable", types.Interface, nil, nil)
	add("System.IFormattable", types.Interface, nil, nil)

	enumerable := add("System.Collections.IEnumerable", types.Interface, nil, nil)
	add("System.Collections.IEnumerator", types.Interface, nil, nil)
	collection := add("System.Collections.ICollection", types.Interface, nil, nil, enumerable)
	list := add("System.Collections.IList", types.Interface, nil, nil, collection, enumerable)

	add("System.String", types.Class, object, nil, enumerable).sealed = true
	add("System.Type", types.Class, object, nil).abstract = true
	add("System.Attribute", types.Class, object, nil).abstract = true
	exception := add("System.Exception", types.Class, object, nil)
	add("System.ArgumentException", types.Class, exception, nil)
	add("System.InvalidOperationException", types.Class, exception, nil)
	add("System.NotSupportedException", types.Class, exception, nil)
	add("System.EventArgs", types.Class, object, nil)
	add("System.Delegate", types.Class, object, nil).abstract = true
	add("System.Action", types.Class, object, nil).sealed = true
	add("System.Action`1", types.Class, object, []string{"T"}).sealed = true
	add("System.Action`2", types.Class, object, []string{"T1", "T2"}).sealed = true
	add("System.Func`1", types.Class, object, []string{"TResult"}).sealed = true
	add("System.Func`2", types.Class, object, []string{"T", "TResult"}).sealed = true
	add("System.Func`3", types.Class, object, []string{"T1", "T2", "TResult"}).sealed = true
	add("System.EventHandler", types.Class, object, nil).sealed = true
	add("System.EventHandler`1", types.Class, object, []string{"TEventArgs"}).sealed = true
	add("System.Nullable`1", types.Struct, valueType, []string{"T"})
	add("System.Lazy`1", types.Class, object, []string{"T"})
	add("System.Uri", types.Class, object, nil)

	genEnumerable := add("System.Collections.Generic.IEnumerable`1", types.Interface, nil, []string{"T"}, enumerable)
	add("System.Collections.Generic.IEnumerator`1", types.Interface, nil, []string{"T"}, disposable)
	genCollection := add("System.Collections.Generic.ICollection`1", types.Interface, nil, []string{"T"})
	genCollection.interfaces = []types.TypeDescriptor{inst(genEnumerable, genCollection.params[0]), enumerable}
	genList := add("System.Collections.Generic.IList`1", types.Interface, nil, []string{"T"})
	genList.interfaces = []types.TypeDescriptor{inst(genCollection, genList.params[0]), inst(genEnumerable, genList.params[0]), enumerable}
	roCollection := add("System.Collections.Generic.IReadOnlyCollection`1", types.Interface, nil, []string{"T"})
	roCollection.interfaces = []types.TypeDescriptor{inst(genEnumerable, roCollection.params[0]), enumerable}
	roList := add("System.Collections.Generic.IReadOnlyList`1", types.Interface, nil, []string{"T"})
	roList.interfaces = []types.TypeDescriptor{inst(roCollection, roList.params[0]), inst(genEnumerable, roList.params[0]), enumerable}
	dictionary := add("System.Collections.Generic.IDictionary`2", types.Interface, nil, []string{"TKey", "TValue"})
	add("System.Collections.Generic.IReadOnlyDictionary`2", types.Interface, nil, []string{"TKey", "TValue"})
	pair := add("System.Collections.Generic.KeyValuePair`2", types.Struct, valueType, []string{"TKey", "TValue"})
	dictionary.interfaces = []types.TypeDescriptor{
		inst(genCollection, inst(pair, dictionary.params...)),
		inst(genEnumerable, inst(pair, dictionary.params...)),
		enumerable,
	}

	listT := add("System.Collections.Generic.List`1", types.Class, object, []string{"T"})
	listT.interfaces = []types.TypeDescriptor{
		inst(genList, listT.params[0]), inst(genCollection, listT.params[0]), inst(genEnumerable, listT.params[0]),
		list, collection, enumerable,
		inst(roList, listT.params[0]), inst(roCollection, listT.params[0]),
	}
	dict := add("System.Collections.Generic.Dictionary`2", types.Class, object, []string{"TKey", "TValue"})
	dict.interfaces = []types.TypeDescriptor{inst(dictionary, dict.params...), enumerable}
	hashSet := add("System.Collections.Generic.HashSet`1", types.Class, object, []string{"T"})
	hashSet.interfaces = []types.TypeDescriptor{inst(genCollection, hashSet.params[0]), inst(genEnumerable, hashSet.params[0]), enumerable}

	task := add("System.Threading.Tasks.Task", types.Class, object, nil, disposable)
	add("System.Threading.Tasks.Task`1", types.Class, task, []string{"TResult"})
	add("System.Threading.Tasks.ValueTask", types.Struct, valueType, nil)
	add("System.Threading.Tasks.ValueTask`1", types.Struct, valueType, []string{"TResult"})
	add("System.Threading.CancellationToken", types.Struct, valueType, nil)

	for name := range ambiguous {
		delete(f.byShort, name)
	}
	return f
}
