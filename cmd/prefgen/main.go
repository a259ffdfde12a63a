// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command prefgen generates typed preference accessors from schemas.
//
// Usage:
//
//	prefgen generate [flags] [schema...]
//	prefgen check [flags] [schema...]
//	prefgen version
//
// A schema is a directory of Go files (interfaces marked with //prefs:group),
// a single .go file, or a YAML document. Without arguments the schemas of
// prefgen.toml are used, or the current directory.
//
// Global flags:
//
//	--color       Colorize diagnostics: auto, on or off (default: auto)
//	--format      Diagnostic format: text or json (default: text)
//	--log-level   Log level: debug, info, warn or error (default: warn)
//	--config      Path to prefgen.toml (default: search upward)
//
// Typical use is a go:generate hook next to the schema:
//
//	//go:generate go run github.com/albertocavalcante/prefgen/cmd/prefgen generate
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/albertocavalcante/prefgen/internal/diag"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFailed reports a pass whose diagnostics were already printed.
var errFailed = errors.New("generation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prefgen",
		Short: "Typed preference accessor generator",
		Long: `prefgen turns preference schemas (Go interfaces marked with //prefs:
directives, or YAML documents) into typed accessors over a key-value store.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	root.PersistentFlags().String("format", "text", "diagnostic format (text|json)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("config", "", "path to prefgen.toml (default: search upward)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// newLogger returns a text logger on the command's stderr.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelFlag, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelFlag)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

// useColor resolves --color for output written to w.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && !color.NoColor && isTerminal(f), nil
	}
	return false, fmt.Errorf("--color: unknown value %q (want auto, on or off)", colorFlag)
}

// renderDiagnostics prints ds in the --format format. Text goes to stderr
// followed by a summary line; JSON goes to stdout.
func renderDiagnostics(cmd *cobra.Command, ds []diag.Diagnostic) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := diag.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	if format == diag.FormatJSON {
		return diag.Render(cmd.OutOrStdout(), ds, diag.RenderOptions{Format: format})
	}

	w := cmd.ErrOrStderr()
	colored, err := useColor(cmd, w)
	if err != nil {
		return err
	}
	if err := diag.Render(w, ds, diag.RenderOptions{Format: format, Color: colored}); err != nil {
		return err
	}
	if summary := diag.Summary(ds); summary != "" {
		fmt.Fprintf(w, "prefgen: %s\n", summary)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
