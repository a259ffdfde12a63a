// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package prefstore

import (
	"maps"
	"slices"
	"sync"
)

// Memory is an in-memory [Store]. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]any
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]any)}
}

func get[T any](m *Memory, key string, def T) T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key].(T); ok {
		return v
	}
	return def
}

func put(m *Memory, key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = v
}

func (m *Memory) GetBool(key string, def bool) bool { return get(m, key, def) }
func (m *Memory) GetInt(key string, def int32) int32 { return get(m, key, def) }
func (m *Memory) GetLong(key string, def int64) int64 { return get(m, key, def) }
func (m *Memory) GetFloat(key string, def float32) float32 { return get(m, key, def) }
func (m *Memory) GetString(key string, def string) string { return get(m, key, def) }

// GetStringSet returns a copy of the stored set.
func (m *Memory) GetStringSet(key string, def []string) []string {
	if v := get[[]string](m, key, nil); v != nil {
		return slices.Clone(v)
	}
	return def
}

func (m *Memory) PutBool(key string, v bool) { put(m, key, v) }
func (m *Memory) PutInt(key string, v int32) { put(m, key, v) }
func (m *Memory) PutLong(key string, v int64) { put(m, key, v) }
func (m *Memory) PutFloat(key string, v float32) { put(m, key, v) }
func (m *Memory) PutString(key string, v string) { put(m, key, v) }

// PutStringSet stores a copy of v with duplicates removed, in first
// occurrence order.
func (m *Memory) PutStringSet(key string, v []string) {
	set := make([]string, 0, len(v))
	seen := make(map[string]bool, len(v))
	for _, s := range v {
		if !seen[s] {
			seen[s] = true
			set = append(set, s)
		}
	}
	put(m, key, set)
}

func (m *Memory) Contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
}

// Keys returns the stored keys, sorted.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.values))
}
