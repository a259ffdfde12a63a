// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build !prefgen_minimal

package main

import (
	"github.com/albertocavalcante/prefgen/generator"
	"github.com/albertocavalcante/prefgen/generators/golang"
	"github.com/albertocavalcante/prefgen/generators/kotlin"
)

func init() {
	generator.Register(golang.NewGenerator())
	generator.Register(kotlin.NewGenerator())
}
