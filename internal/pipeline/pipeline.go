// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package pipeline runs one build pass over a set of schema sources.
//
// A pass scans every source, registers enums and adapters, then builds,
// lowers and emits each group independently. Groups run in parallel; each
// one owns its diagnostic bag and result slot, and results are merged in
// group order so the outcome does not depend on scheduling.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/prefgen/generator"
	"github.com/albertocavalcante/prefgen/internal/build"
	"github.com/albertocavalcante/prefgen/internal/diag"
	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/internal/scan"
)

// DefaultTarget is the generator used when Options.Targets is empty.
const DefaultTarget = "go"

var (
	// ErrUnknownTarget is returned when a requested generator is not registered.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrUnknownGroup is returned when a group filter names no scanned group.
	ErrUnknownGroup = errors.New("unknown group")
)

// Options configures a pass.
type Options struct {
	// Targets names the generators to run. Empty means DefaultTarget.
	Targets []string

	// Groups restricts the pass to the named groups. Empty means all.
	Groups []string

	// Style selects accessor naming.
	Style ir.Style

	// Package overrides the package scanned from the sources.
	Package string

	// Version is stamped into generated headers.
	Version string

	// Jobs bounds the number of groups processed at once.
	// Zero or less means GOMAXPROCS.
	Jobs int

	// GeneratorOptions are passed to every generator as target options.
	GeneratorOptions map[string]string

	// Adapters are registered in addition to those declared in the sources.
	Adapters []*scan.RawAdapter

	Logger *slog.Logger
}

// Result is the outcome of one group.
type Result struct {
	Group string
	Class string
	Index int

	// Files holds the emitted files of every target. Nil when the group failed.
	Files map[string][]byte

	// Diagnostics are the group's diagnostics, ordered.
	Diagnostics []diag.Diagnostic

	symbols []symbol
}

// symbol is a package-level identifier declared by an emitted file.
type symbol struct {
	target string
	pkg    string
	name   string
}

// Failed reports whether the group has errors and emitted nothing.
func (r *Result) Failed() bool {
	return diag.HasErrors(r.Diagnostics)
}

// Report is the outcome of a pass.
type Report struct {
	// Results has one entry per group, in group order.
	Results []*Result

	// Diagnostics holds every diagnostic of the pass, ordered by group,
	// entry and report order. Diagnostics outside any group come first.
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic of the pass is an error.
func (r *Report) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// Files returns the emitted files of all groups that did not fail.
func (r *Report) Files() map[string][]byte {
	files := make(map[string][]byte)
	for _, res := range r.Results {
		maps.Copy(files, res.Files)
	}
	return files
}

// Failed returns the names of the failed groups, in group order.
func (r *Report) Failed() []string {
	var names []string
	for _, res := range r.Results {
		if res.Failed() {
			names = append(names, res.Group)
		}
	}
	return names
}

type job struct {
	pkg string
	raw *scan.RawGroup
}

type pass struct {
	opts    Options
	logger  *slog.Logger
	builder *build.Builder
	targets []generator.Generator
}

// Run executes a build pass over sources.
//
// The returned error is reserved for failures of the pass itself: an
// unreadable source, an unknown target or group, or cancellation. Problems
// in the schemas are reported as diagnostics in the Report.
func Run(ctx context.Context, sources []scan.Source, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	targets, err := lookupTargets(opts.Targets)
	if err != nil {
		return nil, err
	}

	scanned := make([]*scan.Result, 0, len(sources)+1)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := src.Scan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", src.Name(), err)
		}
		logger.Debug("source scanned",
			"source", src.Name(), "groups", len(res.Groups), "enums", len(res.Enums), "adapters", len(res.Adapters))
		scanned = append(scanned, res)
	}
	if len(opts.Adapters) > 0 {
		scanned = append(scanned, &scan.Result{Adapters: opts.Adapters})
	}

	fileBag := diag.NewBag()
	for _, res := range scanned {
		for _, d := range res.Diagnostics {
			fileBag.Report(d)
		}
	}
	reg := build.Registry(scanned, fileBag)

	jobs, err := selectGroups(scanned, opts)
	if err != nil {
		return nil, err
	}

	p := &pass{
		opts:    opts,
		logger:  logger,
		builder: build.New(reg, build.WithLogger(logger)),
		targets: targets,
	}

	results := make([]*Result, len(jobs))
	if len(jobs) > 0 {
		limit := opts.Jobs
		if limit <= 0 {
			limit = runtime.GOMAXPROCS(0)
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(limit, len(jobs)))
		for i, j := range jobs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := p.group(gctx, i, j)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	report := &Report{Results: results}
	report.Diagnostics = fileBag.Items()
	claimed := &claims{files: make(map[string]string), symbols: make(map[symbol]string)}
	for _, res := range results {
		claimed.check(res)
		report.Diagnostics = append(report.Diagnostics, res.Diagnostics...)
	}
	diag.Sort(report.Diagnostics)

	logger.Info("pass complete",
		"groups", len(results), "failed", len(report.Failed()), "diagnostics", len(report.Diagnostics))
	return report, nil
}

func lookupTargets(names []string) ([]generator.Generator, error) {
	if len(names) == 0 {
		names = []string{DefaultTarget}
	}
	var gens []generator.Generator
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		g, ok := generator.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownTarget, name, strings.Join(generator.List(), ", "))
		}
		gens = append(gens, g)
	}
	return gens, nil
}

func selectGroups(scanned []*scan.Result, opts Options) ([]job, error) {
	filter := generator.NewFilter(opts.Groups)
	var names []string
	var jobs []job
	for _, res := range scanned {
		pkg := res.Package
		if opts.Package != "" {
			pkg = opts.Package
		}
		for _, g := range res.Groups {
			names = append(names, g.Name)
			if filter.Match(g.Name) {
				jobs = append(jobs, job{pkg: pkg, raw: g})
			}
		}
	}
	if unknown := filter.Unknown(names); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, strings.Join(unknown, ", "))
	}
	return jobs, nil
}

// group builds and emits one group.
func (p *pass) group(ctx context.Context, index int, j job) (*Result, error) {
	raw := j.raw
	built := p.builder.Build(index, j.pkg, raw)
	res := &Result{Group: raw.Name, Class: raw.Class, Index: index}

	if built.Failed() {
		res.Diagnostics = built.Diagnostics.Sorted()
		p.logger.Info("group failed", "group", raw.Name, "errors", built.Diagnostics.Count(diag.SevError))
		return res, nil
	}

	class := ir.Lower(built.Group, p.opts.Style)
	files := make(map[string][]byte)
	var symbols []symbol
	scope := diag.GroupScope(built.Diagnostics, raw.Name, index)
	for _, gen := range p.targets {
		name := gen.Metadata().Name
		out, err := gen.Generate(ctx, class, generator.Config{
			Source:  raw.Source,
			Version: p.opts.Version,
			Options: p.opts.GeneratorOptions,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			scope.Errorf(diag.EmitError, raw.Pos, "%s target: %v", name, err)
			continue
		}
		for _, file := range out.Names() {
			files[file] = out.Files[file]
		}
		for _, sym := range out.Symbols {
			symbols = append(symbols, symbol{target: name, pkg: class.Package, name: sym})
		}
		for _, w := range out.Warnings {
			scope.WithEntry(w.Property.Entry, w.Property.Index).Warnf(diag.RawValue, w.Property.Pos, "%s target: %s", name, w.Message)
		}
		p.logger.Debug("group emitted", "group", raw.Name, "target", name, "files", out.Names())
	}

	res.Diagnostics = built.Diagnostics.Sorted()
	if !res.Failed() {
		res.Files = files
		res.symbols = symbols
	}
	return res, nil
}

// claims records which group owns each emitted file and package-level
// identifier. Groups are checked in order, so the earlier group wins.
type claims struct {
	files   map[string]string
	symbols map[symbol]string
}

// check fails res when one of its files or identifiers was already emitted
// by an earlier group.
func (c *claims) check(res *Result) {
	if res.Files == nil {
		return
	}
	var conflicts []diag.Diagnostic
	conflict := func(code diag.Code, format string, args ...any) {
		conflicts = append(conflicts, diag.Diagnostic{
			Severity:   diag.SevError,
			Code:       code,
			Message:    fmt.Sprintf(format, args...),
			Group:      res.Group,
			GroupIndex: res.Index,
			EntryIndex: diag.NoIndex,
			Seq:        ^uint64(0),
		})
	}
	for _, name := range slices.Sorted(maps.Keys(res.Files)) {
		if owner, ok := c.files[name]; ok {
			conflict(diag.EmitError, "output file %s is already generated for group %q", name, owner)
		}
	}
	// A shared file already implies shared identifiers.
	if len(conflicts) == 0 {
		for _, sym := range res.symbols {
			if owner, ok := c.symbols[sym]; ok {
				conflict(diag.NameCollision, "%s target: identifier %s in package %s is already declared by group %q", sym.target, sym.name, sym.pkg, owner)
			}
		}
	}
	if len(conflicts) > 0 {
		res.Files = nil
		res.Diagnostics = append(res.Diagnostics, conflicts...)
		return
	}
	for name := range res.Files {
		c.files[name] = res.Group
	}
	for _, sym := range res.symbols {
		c.symbols[sym] = res.Group
	}
}

// Sources returns the schema sources for targets. A directory is scanned
// as a Go package, a .go file alone, and a .yaml or .yml file as a YAML
// schema.
func Sources(targets []string) ([]scan.Source, error) {
	var sources []scan.Source
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", target, err)
		}
		switch ext := filepath.Ext(target); {
		case info.IsDir():
			src, err := scan.GoDir(target)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		case ext == ".go":
			sources = append(sources, scan.NewGoSource(target, target))
		case ext == ".yaml" || ext == ".yml":
			sources = append(sources, scan.YAMLFile(target))
		default:
			return nil, fmt.Errorf("schema %s: unsupported file type %q (want a directory, .go, .yaml or .yml)", target, ext)
		}
	}
	return sources, nil
}
