// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/prefgen/internal/config"
	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/internal/pipeline"
)

// passFlags are the flags shared by generate and check. Set flags override
// prefgen.toml.
type passFlags struct {
	targets       []string
	groups        []string
	pkg           string
	style         string
	jobs          int
	kotlinPackage string
	storeImport   string
}

func (f *passFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.targets, "target", "t", nil, "targets to generate, comma-separated (default: go)")
	fl.StringSliceVarP(&f.groups, "group", "g", nil, "groups to process, comma-separated (default: all)")
	fl.StringVarP(&f.pkg, "package", "p", "", "package of the generated code (default: the schema package)")
	fl.StringVar(&f.style, "style", "", "accessor naming style (fluent|bean)")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "groups processed in parallel (default: GOMAXPROCS)")
	fl.StringVar(&f.kotlinPackage, "kotlin-package", "", "package of generated Kotlin code")
	fl.StringVar(&f.storeImport, "store-import", "", "import path of the store package used by Go accessors")
}

// pass is a completed build pass.
type pass struct {
	report  *pipeline.Report
	config  *config.Config
	schemas []string
	logger  *slog.Logger
}

// runPass loads the configuration, runs the pipeline over the schemas and
// prints its diagnostics.
func runPass(cmd *cobra.Command, args []string, f *passFlags) (*pass, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}

	opts, err := f.options(cmd, cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger

	schemas := args
	if len(schemas) == 0 {
		schemas = cfg.SchemaPaths()
	}
	if len(schemas) == 0 {
		schemas = []string{"."}
	}

	sources, err := pipeline.Sources(schemas)
	if err != nil {
		return nil, err
	}
	report, err := pipeline.Run(cmd.Context(), sources, opts)
	if err != nil {
		return nil, err
	}
	if err := renderDiagnostics(cmd, report.Diagnostics); err != nil {
		return nil, err
	}
	return &pass{report: report, config: cfg, schemas: schemas, logger: logger}, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Discover(wd)
}

func (f *passFlags) options(cmd *cobra.Command, cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Targets:          cfg.Targets,
		Groups:           cfg.Groups,
		Package:          cfg.Package,
		Style:            cfg.StyleValue(),
		Jobs:             cfg.Jobs,
		Version:          version,
		GeneratorOptions: cfg.GeneratorOptions(),
		Adapters:         cfg.RawAdapters(),
	}

	changed := cmd.Flags().Changed
	if changed("target") {
		opts.Targets = f.targets
	}
	if changed("group") {
		opts.Groups = f.groups
	}
	if changed("package") {
		opts.Package = f.pkg
	}
	if changed("style") {
		style, err := ir.ParseStyle(f.style)
		if err != nil {
			return opts, fmt.Errorf("--style: %w", err)
		}
		opts.Style = style
	}
	if changed("jobs") {
		opts.Jobs = f.jobs
	}
	if changed("kotlin-package") {
		opts.GeneratorOptions["kotlin_package"] = f.kotlinPackage
	}
	if changed("store-import") {
		opts.GeneratorOptions["store_import"] = f.storeImport
	}
	return opts, nil
}

// outputDir returns where generated files go: the --output flag, the
// config output, or the directory of a single schema.
func (p *pass) outputDir(flag string) string {
	switch {
	case flag != "":
		return flag
	case p.config.Output != "":
		return p.config.Resolve(p.config.Output)
	case len(p.schemas) == 1:
		if info, err := os.Stat(p.schemas[0]); err == nil && info.IsDir() {
			return p.schemas[0]
		}
		return filepath.Dir(p.schemas[0])
	}
	return "."
}
