// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package prefstore is the runtime contract of generated preference
// accessors.
//
// Generated code talks to a [Store], a string-keyed map of six primitive
// value kinds. Types without a native kind go through a [Codec]. The
// package ships [Memory], an in-memory store for tests and examples; real
// applications bring their own persistent implementation.
package prefstore

// Store is a string-keyed preference store.
//
// Getters return def when the key is absent or holds a value of another
// kind. Implementations must be safe for concurrent use.
type Store interface {
	GetBool(key string, def bool) bool
	GetInt(key string, def int32) int32
	GetLong(key string, def int64) int64
	GetFloat(key string, def float32) float32
	GetString(key string, def string) string
	GetStringSet(key string, def []string) []string

	PutBool(key string, v bool)
	PutInt(key string, v int32)
	PutLong(key string, v int64)
	PutFloat(key string, v float32)
	PutString(key string, v string)
	PutStringSet(key string, v []string)

	// Contains reports whether key holds a value.
	Contains(key string) bool
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)
	// Clear deletes every key.
	Clear()
}
