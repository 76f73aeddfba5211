// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gitpkg "github.com/petar-djukic/go-typedoc/internal/git"
	"github.com/petar-djukic/go-typedoc/internal/project"
)

// newInitCmd creates the "init" command.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init pattern...",
		Short: "Create a project file from artifact globs",
		Long:  "Init matches the glob patterns against the current directory, detects each artifact's format, and writes a project file.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("project")
			if path == "" {
				path = project.DefaultFile
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
			}

			output := viper.GetString("output")
			if output == "" {
				output = defaultOutput
			}
			p, err := project.Init(".", output, args)
			if err != nil {
				return err
			}
			p.NamespaceMatch = viper.GetString("namespace-match")
			p.Index = viper.GetString("index")
			p.ExternalDocs = viper.GetString("external-docs")
			if err := p.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d artifacts.\n", path, len(p.Artifacts))
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing project file")
	return cmd
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last go-typedoc commit",
		Long:  "Undo performs a soft reset of the last commit if go-typedoc made it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir := viper.GetString("output")
			if workDir == "" {
				workDir = "."
			}

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: workDir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}
			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Successfully reverted last go-typedoc commit.")
			return nil
		},
	}
}
