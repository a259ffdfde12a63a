// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "slices"

// Filter selects groups by name. A nil filter selects every group.
type Filter map[string]bool

// NewFilter returns a filter for names, or nil when names is empty.
func NewFilter(names []string) Filter {
	if len(names) == 0 {
		return nil
	}
	f := make(Filter, len(names))
	for _, n := range names {
		f[n] = true
	}
	return f
}

// Match reports whether the group named name is selected.
func (f Filter) Match(name string) bool {
	return f == nil || f[name]
}

// Unknown returns the filter names that match none of available, sorted.
func (f Filter) Unknown(available []string) []string {
	var out []string
	for n := range f {
		if !slices.Contains(available, n) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
