// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/project"
	"github.com/petar-djukic/go-typedoc/internal/watch"
	"github.com/petar-djukic/go-typedoc/pkg/typedoc"
)

const defaultOutput = "docs"

var envKeyReplacer = strings.NewReplacer("-", "_")

var (
	errOutOfDate       = errors.New("documentation is out of date")
	errArtifactsFailed = errors.New("some artifacts could not be loaded")
)

// buildConfig assembles the generator config: the project file first,
// then source arguments and flags on top.
func buildConfig(args []string, logger *zap.Logger) (typedoc.Config, error) {
	var cfg typedoc.Config
	projectPath := viper.GetString("project")
	if projectPath == "" && len(args) == 0 {
		if _, err := os.Stat(project.DefaultFile); err == nil {
			projectPath = project.DefaultFile
		}
	}
	if projectPath != "" {
		var err error
		if cfg, err = typedoc.LoadProject(projectPath); err != nil {
			return cfg, err
		}
	}
	for _, a := range args {
		cfg.Artifacts = append(cfg.Artifacts, typedoc.Artifact{Path: a})
	}
	if len(cfg.Artifacts) == 0 {
		return cfg, errors.WithHint(
			errors.New("no artifacts to document"),
			"pass manifest files or source directories, or create a project with go-typedoc init",
		)
	}

	if v := viper.GetString("output"); v != "" {
		cfg.Output = v
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if v := viper.GetString("namespace-match"); v != "" {
		cfg.NamespaceMatch = v
	}
	if v := viper.GetString("index"); v != "" {
		cfg.Index = v
	}
	if v := viper.GetString("external-docs"); v != "" {
		cfg.ExternalDocs = v
	}
	cfg.Concurrency = viper.GetInt("concurrency")
	cfg.Commit = viper.GetBool("commit")
	cfg.IndexDB = viper.GetString("index-db")
	cfg.Logger = logger
	return cfg, nil
}

func newGenerator(args []string, logger *zap.Logger) (typedoc.Generator, typedoc.Config, error) {
	cfg, err := buildConfig(args, logger)
	if err != nil {
		return nil, cfg, err
	}
	g, err := typedoc.New(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("initialization failed: %w", err)
	}
	return g, cfg, nil
}

// newGenerateCmd creates the "generate" command.
func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [artifact...]",
		Short: "Write documentation pages",
		Long:  "Generate loads every artifact, renders a page per type and the index, and writes the pages that changed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync() //nolint:errcheck

			g, _, err := newGenerator(args, logger)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			result, err := g.Generate(ctx)
			if result != nil {
				printResult(result)
			}
			if err != nil {
				return err
			}
			if len(result.Failed) > 0 {
				return errArtifactsFailed
			}
			return nil
		},
	}
}

// newCheckCmd creates the "check" command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [artifact...]",
		Short: "Verify that the pages on disk are up to date",
		Long:  "Check renders every page without writing and reports missing, stale, and orphaned pages. It exits non-zero when anything differs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync() //nolint:errcheck

			g, _, err := newGenerator(args, logger)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			result, err := g.Check(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range result.Missing {
				fmt.Fprintf(out, "missing  %s\n", p)
			}
			for _, p := range result.Stale {
				fmt.Fprintf(out, "stale    %s\n", p)
				if viper.GetInt("verbose") > 0 {
					fmt.Fprint(out, result.Diffs[p])
				}
			}
			for _, p := range result.Orphans {
				fmt.Fprintf(out, "orphan   %s\n", p)
			}
			if !result.UpToDate() {
				return errors.WithHint(errOutOfDate, "run go-typedoc generate to update the pages")
			}
			if len(result.Failed) > 0 {
				return errArtifactsFailed
			}
			fmt.Fprintln(out, "documentation is up to date")
			return nil
		},
	}
}

// newWatchCmd creates the "watch" command.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [artifact...]",
		Short: "Regenerate pages whenever an artifact changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync() //nolint:errcheck

			g, cfg, err := newGenerator(args, logger)
			if err != nil {
				return err
			}
			debounce, _ := cmd.Flags().GetDuration("debounce")

			var paths []string
			for _, a := range cfg.Artifacts {
				paths = append(paths, a.Path)
				if a.Docs != "" {
					paths = append(paths, a.Docs)
				}
			}
			w, err := watch.New(watch.Config{
				Paths:    paths,
				Ignore:   []string{cfg.Output},
				Debounce: debounce,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			rebuild := func(ctx context.Context) error {
				result, err := g.Generate(ctx)
				if err != nil {
					return err
				}
				logger.Warn("documentation regenerated",
					zap.Int("written", len(result.Written)),
					zap.Strings("failed", result.Failed),
				)
				return nil
			}
			if err := rebuild(ctx); err != nil {
				logger.Error("initial build failed", zap.Error(err))
			}
			return w.Run(ctx, rebuild)
		},
	}
	cmd.Flags().Duration("debounce", 0, "Quiet period before a rebuild (default 500ms)")
	return cmd
}

// printResult outputs the result as JSON to stdout.
func printResult(result *typedoc.Result) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
