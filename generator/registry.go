// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps target names to generators. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	gens map[string]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{gens: make(map[string]Generator)}
}

// Add registers g under its metadata name. A target is registered once.
func (r *Registry) Add(g Generator) error {
	name := g.Metadata().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.gens[name]; exists {
		return fmt.Errorf("generator %q already registered", name)
	}
	r.gens[name] = g
	return nil
}

// Get returns the generator of the target name.
func (r *Registry) Get(name string) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gens[name]
	return g, ok
}

// Names returns the target names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.gens))
}

// All returns the generators ordered by target name.
func (r *Registry) All() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gens := make([]Generator, 0, len(r.gens))
	for _, name := range slices.Sorted(maps.Keys(r.gens)) {
		gens = append(gens, r.gens[name])
	}
	return gens
}

// targets holds the generators compiled into the binary.
var targets = NewRegistry()

// Register adds g to the built-in targets. It panics when the target name
// is taken, so a duplicate shows up at program start.
func Register(g Generator) {
	if err := targets.Add(g); err != nil {
		panic(err)
	}
}

// Get returns a built-in target by name.
func Get(name string) (Generator, bool) { return targets.Get(name) }

// List returns the built-in target names, sorted.
func List() []string { return targets.Names() }

// All returns the built-in targets ordered by name.
func All() []Generator { return targets.All() }
