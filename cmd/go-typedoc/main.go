// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-typedoc generates Markdown API reference pages.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/logging"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "go-typedoc",
		Short:         "Markdown API reference generator",
		Long:          "go-typedoc reads type metadata from manifests, C# sources, or Go packages and writes one Markdown page per type plus an index.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Global flags.
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project file (default typedoc.yaml when present)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory (default docs)")
	rootCmd.PersistentFlags().String("namespace-match", "", "Regular expression or glob selecting namespaces")
	rootCmd.PersistentFlags().String("index", "", "Index page name (default index)")
	rootCmd.PersistentFlags().Int("concurrency", 4, "Artifacts loaded in parallel")
	rootCmd.PersistentFlags().Bool("commit", false, "Commit written pages to the enclosing git repository")
	rootCmd.PersistentFlags().String("index-db", "", "Write a SQLite symbol index to this path")
	rootCmd.PersistentFlags().String("external-docs", "", "Root URL for framework type links")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")

	// Bind flags to viper.
	for _, name := range []string{
		"project", "output", "namespace-match", "index", "concurrency",
		"commit", "index-db", "external-docs", "verbose", "log-json",
	} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	// Env vars: GO_TYPEDOC_OUTPUT, GO_TYPEDOC_EXTERNAL_DOCS, etc.
	viper.SetEnvPrefix("GO_TYPEDOC")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-typedoc")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() //nolint:errcheck // config file is optional

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// newLogger builds the logger from the verbosity flags.
func newLogger() *zap.Logger {
	return logging.New(logging.Config{
		Verbosity: viper.GetInt("verbose"),
		JSON:      viper.GetBool("log-json"),
	})
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-typedoc version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("go-typedoc %s\n", version)
		},
	}
}
