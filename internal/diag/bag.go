// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package diag

import (
	"slices"
	"sync"
)

// Bag accumulates diagnostics. It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
	seq   uint64
}

// NewBag returns a bag seeded with ds. Seeded diagnostics keep their
// relative order ahead of anything reported later.
func NewBag(ds ...Diagnostic) *Bag {
	b := &Bag{}
	for _, d := range ds {
		b.Report(d)
	}
	return b
}

// Report implements Reporter.
func (b *Bag) Report(d Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	d.Seq = b.seq
	b.items = append(b.items, d)
}

// Merge appends the diagnostics of other, preserving their order.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	for _, d := range other.Items() {
		b.Report(d)
	}
}

// Len returns the number of diagnostics.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// HasErrors returns true if any diagnostic has Severity >= SevError.
func (b *Bag) HasErrors() bool {
	return b.Count(SevError) > 0
}

// Count returns the number of diagnostics with exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// Items returns a copy of the diagnostics in report order.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Sorted returns a copy of the diagnostics ordered by group index, entry
// index and report order.
func (b *Bag) Sorted() []Diagnostic {
	items := b.Items()
	Sort(items)
	return items
}

// Sort orders ds by (group index, entry index, sequence).
// The sort is stable, so diagnostics from separate bags with equal keys
// keep their relative order.
func Sort(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		if a.GroupIndex != b.GroupIndex {
			return a.GroupIndex - b.GroupIndex
		}
		if a.EntryIndex != b.EntryIndex {
			return a.EntryIndex - b.EntryIndex
		}
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
}

// HasErrors reports whether any of ds is an error.
func HasErrors(ds []Diagnostic) bool {
	return slices.ContainsFunc(ds, Diagnostic.IsError)
}
