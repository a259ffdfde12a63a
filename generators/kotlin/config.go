// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package kotlin

// Config holds configuration for Kotlin generation.
type Config struct {
	// PackageName is the Kotlin package name (e.g., "com.example.settings").
	PackageName string

	// Source metadata for header comments.
	Source  string
	Version string
}

// keywords are Kotlin hard keywords, which need backticks as identifiers.
var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true, "throw": true,
	"true": true, "try": true, "typealias": true, "typeof": true, "val": true,
	"var": true, "when": true, "while": true,
}
