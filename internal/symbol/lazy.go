// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import "sync/atomic"

// lazy caches the result of a pure computation. Concurrent first calls may
// each run compute; the first stored result wins and every caller returns
// it.
type lazy[T any] struct {
	cell atomic.Pointer[outcome[T]]
}

type outcome[T any] struct {
	value T
	err   error
}

func (l *lazy[T]) get(compute func() (T, error)) (T, error) {
	if o := l.cell.Load(); o != nil {
		return o.value, o.err
	}
	v, err := compute()
	if l.cell.CompareAndSwap(nil, &outcome[T]{value: v, err: err}) {
		return v, err
	}
	o := l.cell.Load()
	return o.value, o.err
}
