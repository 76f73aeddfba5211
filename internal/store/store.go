// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store exports the symbols of a run to a SQLite index so other
// tools can map type identifiers to their pages.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite" // Register modernc SQLite driver

	"github.com/petar-djukic/go-typedoc/internal/symbol"
)

const schema = `
CREATE TABLE IF NOT EXISTS symbols (
    identifier TEXT PRIMARY KEY,
    namespace TEXT NOT NULL,
    kind TEXT NOT NULL,
    artifact TEXT NOT NULL,
    display_name TEXT NOT NULL,
    signature TEXT NOT NULL,
    directory TEXT NOT NULL,
    file TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_symbols_namespace ON symbols(namespace);
`

// ErrNotFound is returned by Lookup for unknown identifiers.
var ErrNotFound = errors.New("symbol not found")

// Entry is one row of the index.
type Entry struct {
	Identifier  string
	Namespace   string
	Kind        string
	Artifact    string
	DisplayName string
	Signature   string
	Directory   string // Slash-separated, relative to the output directory
	File        string // Page file name
}

// Path returns the page path relative to the output directory.
func (e Entry) Path() string {
	if e.Directory == "" {
		return e.File
	}
	return e.Directory + "/" + e.File
}

// Store is an open symbol index.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "creating index directory")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening index")
	}
	// One connection keeps an in-memory database alive across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &Store{db: db}, nil
}

// Close closes the index.
func (s *Store) Close() error { return s.db.Close() }

// EntryOf builds the index entry of a registered type symbol.
func EntryOf(sym *symbol.TypeSymbol) (Entry, error) {
	d := sym.Descriptor()
	if d == nil {
		return Entry{}, symbol.ErrNotTypeSymbol
	}
	name, err := sym.DisplayName()
	if err != nil {
		return Entry{}, err
	}
	sig, err := sym.Signature(true)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Identifier:  sym.Identifier(),
		Namespace:   symbol.NamespaceOf(d),
		Kind:        d.Kind().String(),
		Artifact:    d.Artifact(),
		DisplayName: name,
		Signature:   sig,
		Directory:   sym.Directory(),
		File:        sym.FileStem() + ".md",
	}, nil
}

// Save replaces the index contents with the given symbols in one
// transaction.
func (s *Store) Save(ctx context.Context, symbols []*symbol.TypeSymbol) error {
	entries := make([]Entry, 0, len(symbols))
	for _, sym := range symbols {
		e, err := EntryOf(sym)
		if err != nil {
			return errors.Wrapf(err, "indexing %s", sym.Identifier())
		}
		entries = append(entries, e)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM symbols"); err != nil {
		return errors.Wrap(err, "clearing index")
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO symbols
		(identifier, namespace, kind, artifact, display_name, signature, directory, file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx, e.Identifier, e.Namespace, e.Kind, e.Artifact,
			e.DisplayName, e.Signature, e.Directory, e.File)
		if err != nil {
			return errors.Wrapf(err, "inserting %s", e.Identifier)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing index")
	}
	return nil
}

const selectColumns = `SELECT identifier, namespace, kind, artifact, display_name, signature, directory, file FROM symbols`

// Lookup returns the entry with the given identifier.
func (s *Store) Lookup(ctx context.Context, identifier string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE identifier = ?", identifier)
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, errors.Wrapf(ErrNotFound, "%s", identifier)
	}
	return e, err
}

// Namespace returns the entries of one namespace ordered by identifier.
func (s *Store) Namespace(ctx context.Context, ns string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE namespace = ? ORDER BY identifier", ns)
	if err != nil {
		return nil, errors.Wrap(err, "querying namespace")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "reading rows")
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (Entry, error) {
	var e Entry
	err := r.Scan(&e.Identifier, &e.Namespace, &e.Kind, &e.Artifact,
		&e.DisplayName, &e.Signature, &e.Directory, &e.File)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Entry{}, errors.Wrap(err, "scanning symbol")
	}
	return e, err
}
