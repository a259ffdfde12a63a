// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package resolve

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Registry.Resolve.
var (
	// ErrUnsupported is returned when a type has no native mapping and no
	// registered conversion.
	ErrUnsupported = errors.New("unsupported type")

	// ErrUnknownAdapter is returned when an entry names an adapter that is
	// not registered.
	ErrUnknownAdapter = errors.New("unknown adapter")

	// ErrAdapterMismatch is returned when an adapter is bound to a different
	// type than the entry declares.
	ErrAdapterMismatch = errors.New("adapter type mismatch")

	// ErrDuplicate is returned when an enum or adapter is registered twice.
	ErrDuplicate = errors.New("already registered")
)

// UnsupportedError reports a type with no storage mapping.
type UnsupportedError struct {
	Type   string
	Reason string
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("type %s is not supported: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("type %s is not supported: no native storage and no registered conversion", e.Type)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// AdapterError reports a failed adapter lookup or binding.
type AdapterError struct {
	Adapter string
	Type    string
	// Bound is the type the adapter is registered for, on mismatches.
	Bound string
	Err   error
}

func (e *AdapterError) Error() string {
	if errors.Is(e.Err, ErrAdapterMismatch) {
		return fmt.Sprintf("adapter %q converts %s, not %s", e.Adapter, e.Bound, e.Type)
	}
	return fmt.Sprintf("adapter %q is not registered", e.Adapter)
}

func (e *AdapterError) Is(target error) bool {
	return target == e.Err
}

// DuplicateError reports a second registration under the same identity.
type DuplicateError struct {
	Kind string
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q is already registered", e.Kind, e.Name)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
