// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package typedoc

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/internal/store"
)

// IndexEntry is one symbol of an index written with Config.IndexDB.
type IndexEntry = store.Entry

// ErrNotFound is returned by Lookup when nothing matches the query.
var ErrNotFound = store.ErrNotFound

// Lookup queries a symbol index. The query is matched as a type
// identifier first and as a namespace second.
func Lookup(ctx context.Context, dbPath, query string) ([]IndexEntry, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, errors.Wrapf(err, "opening index %s", dbPath)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	e, err := db.Lookup(ctx, query)
	if err == nil {
		return []IndexEntry{e}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	entries, err := db.Namespace(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "%s", query)
	}
	return entries, nil
}
