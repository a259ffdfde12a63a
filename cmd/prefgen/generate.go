// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/prefgen/generator"
)

func newGenerateCmd() *cobra.Command {
	var (
		flags  passFlags
		output string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate [flags] [schema...]",
		Short: "Generate accessors for preference schemas",
		Long: `Generate scans the schemas, validates every group and writes one file per
group and target. If any diagnostic is an error, nothing is written.`,
		Example: `  # Generate Go accessors next to the schema package
  prefgen generate ./settings

  # Generate Go and Kotlin accessors into a directory
  prefgen generate -t go,kotlin -o gen/ ./settings

  # Print the generated code instead of writing it
  prefgen generate --dry-run prefs.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPass(cmd, args, &flags)
			if err != nil {
				return err
			}
			if p.report.HasErrors() {
				return errFailed
			}

			files := p.report.Files()
			if dryRun {
				out := cmd.OutOrStdout()
				for _, name := range slices.Sorted(maps.Keys(files)) {
					fmt.Fprintf(out, "// === %s ===\n%s", name, files[name])
				}
				return nil
			}
			return writeFiles(p, p.outputDir(output), files)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: the schema directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print to stdout without writing files")
	return cmd
}

func writeFiles(p *pass, dir string, files map[string][]byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, name := range slices.Sorted(maps.Keys(files)) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		p.logger.Info("wrote", "file", path)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	var flags passFlags
	cmd := &cobra.Command{
		Use:   "check [flags] [schema...]",
		Short: "Validate preference schemas without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPass(cmd, args, &flags)
			if err != nil {
				return err
			}
			if p.report.HasErrors() {
				return errFailed
			}
			p.logger.Info("check passed", "groups", len(p.report.Results))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := version
			if v == "dev" {
				if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
					v = info.Main.Version
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prefgen %s (commit: %s, built: %s)\n", v, commit, date)
			fmt.Fprintln(out, "targets:")
			for _, g := range generator.All() {
				m := g.Metadata()
				fmt.Fprintf(out, "  %-8s %-7s %s (%s)\n", m.Name, m.Version, m.Description, strings.Join(m.FileExtensions, ", "))
			}
		},
	}
}
