// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package build turns raw scanned groups into validated semantic models.
//
// Each group is built independently into its own diagnostic bag. An entry
// with any error is left out of the model; a group with any error is
// marked failed and must not be emitted, but is still fully checked so
// every problem is reported in one pass.
package build

import (
	"fmt"
	"log/slog"

	"github.com/albertocavalcante/prefgen/internal/diag"
	"github.com/albertocavalcante/prefgen/internal/naming"
	"github.com/albertocavalcante/prefgen/internal/resolve"
	"github.com/albertocavalcante/prefgen/internal/scan"
	"github.com/albertocavalcante/prefgen/model"
)

// Builder builds groups against one resolver registry.
type Builder struct {
	reg    *resolve.Registry
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for build progress.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// New returns a builder resolving types through reg.
func New(reg *resolve.Registry, opts ...Option) *Builder {
	b := &Builder{reg: reg, logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Result is the outcome of building one group.
type Result struct {
	// Group holds the valid entries. Nil only when the group declaration
	// itself is unusable.
	Group *model.Group

	// Diagnostics are the group's diagnostics, including its scan errors.
	Diagnostics *diag.Bag
}

// Failed reports whether the group has errors and must not be emitted.
func (r *Result) Failed() bool {
	return r.Group == nil || r.Diagnostics.HasErrors()
}

// entryState tracks one entry through the build steps.
type entryState struct {
	raw    *scan.RawEntry
	scope  diag.Scope
	failed bool
}

func (s *entryState) errorf(code diag.Code, format string, args ...any) {
	s.failed = true
	s.scope.Errorf(code, s.raw.Pos, format, args...)
}

// Build validates raw, the group at position index of the pass, in package
// pkg. raw.Diagnostics seed the result's bag.
func (b *Builder) Build(index int, pkg string, raw *scan.RawGroup) *Result {
	bag := diag.NewBag()
	scanFailed := make(map[int]bool)
	for _, d := range raw.Diagnostics {
		d.Group = raw.Name
		d.GroupIndex = index
		bag.Report(d)
		if d.IsError() {
			scanFailed[d.EntryIndex] = true
		}
	}
	res := &Result{Diagnostics: bag}
	gscope := diag.GroupScope(bag, raw.Name, index)

	// Entries are still checked when the declaration is unusable so one
	// run reports every problem of the group.
	groupOK := b.checkGroup(gscope, pkg, raw)

	g := &model.Group{
		Name:    raw.Name,
		Class:   raw.Class,
		Package: pkg,
		Prefix:  raw.Prefix,
		Suffix:  raw.Suffix,
		Doc:     raw.Doc,
		Source:  raw.Source,
		Pos:     raw.Pos,
	}

	keys := make(map[string]*scan.RawEntry)
	members := make(map[naming.Claim]*scan.RawEntry)

	for _, re := range raw.Entries {
		st := &entryState{raw: re, scope: gscope.WithEntry(re.Name, re.Index), failed: scanFailed[re.Index]}
		e := b.buildEntry(st, g, raw.Imports, keys, members)
		if e != nil && !st.failed {
			g.Entries = append(g.Entries, e)
		}
	}

	if !groupOK {
		b.logger.Debug("group rejected", "group", raw.Name, "entries", len(raw.Entries))
		return res
	}
	res.Group = g
	b.logger.Debug("group built",
		"group", g.Name, "entries", len(g.Entries), "declared", len(raw.Entries), "failed", res.Failed())
	return res
}

func (b *Builder) checkGroup(s diag.Scope, pkg string, raw *scan.RawGroup) bool {
	ok := true
	if raw.Name == "" {
		// Already reported by the scanner.
		ok = false
	}
	if !naming.IsIdentifier(raw.Class) {
		s.Errorf(diag.InvalidGroup, raw.Pos, "group %q: class name %q is not a valid identifier", raw.Name, raw.Class)
		ok = false
	} else if raw.Class == raw.Name {
		s.Errorf(diag.InvalidGroup, raw.Pos, "group %q: class name must differ from the schema declaration", raw.Name)
		ok = false
	}
	if !naming.IsIdentifier(pkg) {
		s.Errorf(diag.InvalidGroup, raw.Pos, "group %q: package name %q is not a valid identifier", raw.Name, pkg)
		ok = false
	}
	return ok
}

// buildEntry runs every check on one entry. It returns nil when the entry
// cannot be modeled at all; otherwise st.failed tells whether it is valid.
func (b *Builder) buildEntry(st *entryState, g *model.Group, imports map[string]string, keys map[string]*scan.RawEntry, members map[naming.Claim]*scan.RawEntry) *model.Entry {
	re := st.raw

	// Name.
	if !naming.Valid(re.Name) {
		st.errorf(diag.InvalidName,
			"entry name %q must start with a letter and contain only letters, digits, '_', '-', '.' or spaces", re.Name)
		return nil
	}
	member := naming.Member(re.Name)
	if naming.Adjusted(re.Name) {
		st.scope.Warnf(diag.NameAdjusted, re.Pos, "entry name %q is normalized to %q", re.Name, naming.LowerCamel(re.Name))
	}

	e := &model.Entry{
		Name:   re.Name,
		Member: member,
		Doc:    re.Doc,
		Pos:    re.Pos,
		Index:  re.Index,
	}

	// Type.
	declared := model.Void
	if !re.Void() {
		t, err := model.ParseTypeRef(re.Type, imports)
		if err != nil {
			st.errorf(diag.UnsupportedType, "entry %q: %v", re.Name, err)
		} else {
			declared = t
		}
	}
	e.Declared = declared
	resolved, err := b.reg.Resolve(declared, re.Adapter)
	typeOK := err == nil && !st.failed
	if err != nil && !st.failed {
		st.errorf(diag.UnsupportedType, "entry %q: %v", re.Name, err)
	}
	if typeOK {
		e.Storage = resolved.Storage
		e.Conversion = resolved.Conversion
		e.Nullable = resolved.Nullable
	}

	// Key.
	switch {
	case re.Key == nil:
		e.Key = naming.Key(g.Prefix, re.Name, g.Suffix)
	case *re.Key == "":
		st.errorf(diag.InvalidKey, "entry %q: explicit key must not be empty", re.Name)
	default:
		e.Key = *re.Key
		e.KeyExplicit = true
	}
	if e.Key != "" {
		if owner, dup := keys[e.Key]; dup {
			st.errorf(diag.DuplicateKey, "entry %q: key %q is already used by entry %q", re.Name, e.Key, owner.Name)
		} else {
			keys[e.Key] = re
		}
	}

	// Generated member names.
	b.claimMembers(st, member, members)

	// Default.
	if re.Default != nil {
		switch {
		case re.Void():
			st.scope.Warnf(diag.DefaultIgnored, re.Pos, "entry %q: key-only entries take no default; %q is ignored", re.Name, *re.Default)
		case typeOK:
			lit, err := parseDefault(*re.Default, declared, resolved)
			if err != nil {
				st.errorf(diag.InvalidDefault, "entry %q: default %q is not a valid %s: %v", re.Name, *re.Default, declared.Base(), err)
			} else {
				e.Default = lit
			}
		}
	}
	return e
}

func (b *Builder) claimMembers(st *entryState, member string, members map[naming.Claim]*scan.RawEntry) {
	re := st.raw
	claims := naming.Claims(member)
	for _, c := range claims {
		if c.Form == "member" && naming.IsReserved(c.Name) {
			st.errorf(diag.NameCollision, "entry %q: generated member %s collides with a reserved group method", re.Name, c.Name)
			return
		}
		if owner, ok := members[c]; ok {
			st.errorf(diag.NameCollision, "entry %q: generated %s %s collides with entry %q", re.Name, c.Form, c.Name, owner.Name)
			return
		}
	}
	for _, c := range claims {
		members[c] = re
	}
}

// Registry builds the resolver registry from the enums and adapters of all
// scan results. Registration failures are reported as scan errors.
func Registry(results []*scan.Result, r diag.Reporter) *resolve.Registry {
	reg := resolve.NewRegistry()
	fscope := diag.FileScope(r)

	for _, res := range results {
		for _, re := range res.Enums {
			consts := make(map[string]string, len(re.Consts))
			for _, c := range re.Consts {
				consts[c.Name] = c.Value
			}
			err := reg.RegisterEnum(resolve.Enum{
				Type:       model.TypeRef{Name: re.Name},
				Underlying: re.Underlying,
				Values:     re.Values(),
				Consts:     consts,
				Pos:        re.Pos,
			})
			if err != nil {
				fscope.Errorf(diag.ScanError, re.Pos, "%v", err)
			}
		}
	}
	for _, res := range results {
		for _, ra := range res.Adapters {
			t, err := model.ParseTypeRef(ra.Type, ra.Imports)
			if err != nil {
				fscope.Errorf(diag.ScanError, ra.Pos, "adapter %q: %v", ra.Name, err)
				continue
			}
			storage, ok := model.ParseStorage(ra.Storage)
			if !ok {
				fscope.Errorf(diag.ScanError, ra.Pos, "adapter %q: unknown storage %q", ra.Name, ra.Storage)
				continue
			}
			err = reg.RegisterAdapter(resolve.Adapter{
				Name: ra.Name, Type: t, Storage: storage, Codec: ra.Codec, Pos: ra.Pos,
			})
			if err != nil {
				fscope.Errorf(diag.ScanError, ra.Pos, "%v", err)
			}
		}
	}
	return reg
}

// String describes a build result for logs.
func (r *Result) String() string {
	if r.Group == nil {
		return "rejected"
	}
	return fmt.Sprintf("%s (%d entries)", r.Group.Name, len(r.Group.Entries))
}
