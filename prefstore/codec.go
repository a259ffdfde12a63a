// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package prefstore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts between a declared type T and a storage primitive S.
//
// S is one of bool, int32, int64, float32, string or []string.
type Codec[T, S any] interface {
	Encode(v T) (S, error)
	Decode(s S) (T, error)
}

// CodecError reports a failed conversion of a preference value.
type CodecError struct {
	Key string
	// Op is "encode" or "decode".
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("prefstore: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// JSON stores values of T as JSON text.
type JSON[T any] struct{}

var _ Codec[struct{}, string] = JSON[struct{}]{}

func (JSON[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSON[T]) Decode(s string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

// Msgpack stores values of T as base64-encoded MessagePack.
type Msgpack[T any] struct{}

var _ Codec[struct{}, string] = Msgpack[struct{}]{}

func (Msgpack[T]) Encode(v T) (string, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (Msgpack[T]) Decode(s string) (T, error) {
	var v T
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return v, fmt.Errorf("msgpack: %w", err)
	}
	err = msgpack.Unmarshal(b, &v)
	return v, err
}
