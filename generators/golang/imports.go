// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"path"
	"slices"
	"strings"
)

// importSet collects the imports of a generated file, keyed by path.
// The value is the local name, or "" when it matches the path's last
// element.
type importSet struct {
	m     map[string]string
	order []string
}

func newImportSet() *importSet {
	return &importSet{m: make(map[string]string)}
}

func (s *importSet) add(importPath, name string) {
	if _, exists := s.m[importPath]; exists {
		return
	}
	if name == path.Base(importPath) {
		name = ""
	}
	s.order = append(s.order, importPath)
	s.m[importPath] = name
}

// groups returns the standard library paths and the others, each sorted.
func (s *importSet) groups() (std, other []string) {
	for _, p := range s.order {
		first, _, _ := strings.Cut(p, "/")
		if strings.Contains(first, ".") {
			other = append(other, p)
		} else {
			std = append(std, p)
		}
	}
	slices.Sort(std)
	slices.Sort(other)
	return std, other
}

func (s *importSet) spec(importPath string) string {
	if name := s.m[importPath]; name != "" {
		return name + " " + quote(importPath)
	}
	return quote(importPath)
}
