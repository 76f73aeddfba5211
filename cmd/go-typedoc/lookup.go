// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-typedoc/pkg/typedoc"
)

// newLookupCmd creates the "lookup" command.
func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup identifier|namespace",
		Short: "Find the page of a type in the symbol index",
		Long:  "Lookup reads the SQLite index written by generate --index-db and prints the page path and signature of a type, or of every type in a namespace.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db := viper.GetString("index-db")
			if db == "" {
				return errors.WithHint(errors.New("no symbol index given"), "pass --index-db with the path used by generate")
			}
			entries, err := typedoc.Lookup(context.Background(), db, args[0])
			if err != nil {
				return err
			}
			output := viper.GetString("output")
			out := cmd.OutOrStdout()
			for _, e := range entries {
				path := e.Path()
				if output != "" {
					path = filepath.Join(output, filepath.FromSlash(path))
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", e.Identifier, path, e.Signature)
			}
			return nil
		},
	}
}
