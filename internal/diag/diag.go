// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package diag collects and renders build diagnostics.
//
// Every problem found while scanning, building or emitting a preference
// group is reported as a Diagnostic into a Bag. Nothing aborts early; the
// bag is ordered by (group, entry, report order) and handed to the caller
// at the end of the pass.
package diag

import (
	"fmt"

	"github.com/albertocavalcante/prefgen/model"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning never suppresses emission.
	SevWarning
	// SevError fails the enclosing group.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SevInfo
	case "warning":
		*s = SevWarning
	case "error":
		*s = SevError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Code identifies the kind of problem.
type Code string

const (
	ScanError       Code = "scan-error"
	UnsupportedType Code = "unsupported-type"
	DuplicateKey    Code = "duplicate-key"
	InvalidDefault  Code = "invalid-default"
	NameCollision   Code = "name-collision"
	InvalidName     Code = "invalid-name"
	InvalidKey      Code = "invalid-key"
	InvalidGroup    Code = "invalid-group"
	EmitError       Code = "emit-error"

	NameAdjusted   Code = "name-adjusted"
	DefaultIgnored Code = "default-ignored"
	RawValue       Code = "raw-value"
)

// NoIndex marks a diagnostic that is not attributed to a group or entry.
const NoIndex = -1

// Diagnostic is one reported problem. It is never mutated after reporting.
type Diagnostic struct {
	Severity Severity  `json:"severity"`
	Code     Code      `json:"code"`
	Message  string    `json:"message"`
	Pos      model.Pos `json:"pos"`

	// Group and Entry name the attributed declaration, if any.
	Group string `json:"group,omitempty"`
	Entry string `json:"entry,omitempty"`

	// Ordering keys. NoIndex sorts before every real index.
	GroupIndex int    `json:"-"`
	EntryIndex int    `json:"-"`
	Seq        uint64 `json:"-"`
}

// IsError reports whether d is fatal to its group.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Pos, d.Severity, d.Code, d.Message)
}

// Reporter receives diagnostics from a phase.
type Reporter interface {
	Report(d Diagnostic)
}

// Scope reports diagnostics attributed to one group, and optionally one
// entry of that group.
type Scope struct {
	R          Reporter
	Group      string
	GroupIndex int
	Entry      string
	EntryIndex int
}

// FileScope returns a scope for diagnostics outside any group.
func FileScope(r Reporter) Scope {
	return Scope{R: r, GroupIndex: NoIndex, EntryIndex: NoIndex}
}

// GroupScope returns a scope for group-level diagnostics.
func GroupScope(r Reporter, group string, index int) Scope {
	return Scope{R: r, Group: group, GroupIndex: index, EntryIndex: NoIndex}
}

// WithEntry narrows s to one entry.
func (s Scope) WithEntry(entry string, index int) Scope {
	s.Entry = entry
	s.EntryIndex = index
	return s
}

// Errorf reports an error.
func (s Scope) Errorf(code Code, pos model.Pos, format string, args ...any) {
	s.report(SevError, code, pos, fmt.Sprintf(format, args...))
}

// Warnf reports a warning.
func (s Scope) Warnf(code Code, pos model.Pos, format string, args ...any) {
	s.report(SevWarning, code, pos, fmt.Sprintf(format, args...))
}

func (s Scope) report(sev Severity, code Code, pos model.Pos, msg string) {
	if s.R == nil {
		return
	}
	s.R.Report(Diagnostic{
		Severity:   sev,
		Code:       code,
		Message:    msg,
		Pos:        pos,
		Group:      s.Group,
		Entry:      s.Entry,
		GroupIndex: s.GroupIndex,
		EntryIndex: s.EntryIndex,
	})
}
