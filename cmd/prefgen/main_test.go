// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/prefgen/internal/diag"
)

const flagsSchema = `package flags

//prefs:group
type Flags interface {
	//prefs:entry default=true
	DarkMode() bool
}
`

const brokenSchema = `package flags

//prefs:group
type Flags interface {
	//prefs:entry key=mode
	DarkMode() bool
	//prefs:entry key=mode
	LightMode() bool
}
`

// project writes a schema and a prefgen.toml into a temp directory and
// returns the directory and the config path.
func project(t *testing.T, schema, toml string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flags.go"), []byte(schema), 0o644))
	cfg := filepath.Join(dir, "prefgen.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(toml), 0o644))
	return dir, cfg
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerate(t *testing.T) {
	dir, cfg := project(t, flagsSchema, "targets = [\"go\", \"kotlin\"]\noutput = \"gen\"\n")

	_, stderr, err := execute(t, "generate", "--config", cfg, dir)
	require.NoError(t, err, stderr)

	goSrc, err := os.ReadFile(filepath.Join(dir, "gen", "flags_prefs.go"))
	require.NoError(t, err)
	assert.Contains(t, string(goSrc), "func (p *FlagsPrefs) DarkMode() bool")
	assert.Contains(t, string(goSrc), "// prefgen version: dev")

	ktSrc, err := os.ReadFile(filepath.Join(dir, "gen", "FlagsPrefs.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(ktSrc), "var darkMode: Boolean")
}

func TestGenerate_FlagsOverrideConfig(t *testing.T) {
	dir, cfg := project(t, flagsSchema, "schemas = [\"flags.go\"]\ntargets = [\"kotlin\"]\n")

	_, stderr, err := execute(t, "generate", "--config", cfg, "-t", "go", "--style", "bean")
	require.NoError(t, err, stderr)

	src, err := os.ReadFile(filepath.Join(dir, "flags_prefs.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "func (p *FlagsPrefs) IsDarkMode() bool")
	assert.NoFileExists(t, filepath.Join(dir, "FlagsPrefs.kt"))
}

func TestGenerate_DryRun(t *testing.T) {
	dir, cfg := project(t, flagsSchema, "")

	stdout, stderr, err := execute(t, "generate", "--config", cfg, "--dry-run", dir)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "// === flags_prefs.go ===\n// Code generated by prefgen. DO NOT EDIT.")
	assert.NoFileExists(t, filepath.Join(dir, "flags_prefs.go"))
}

func TestGenerate_ErrorsWriteNothing(t *testing.T) {
	dir, cfg := project(t, brokenSchema, "")

	_, stderr, err := execute(t, "generate", "--config", cfg, "--color", "off", dir)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, `flags.go:8:2: error[duplicate-key]: entry "LightMode": key "mode" is already used by entry "DarkMode"`)
	assert.Contains(t, stderr, "prefgen: 1 error, 0 warnings")
	assert.NoFileExists(t, filepath.Join(dir, "flags_prefs.go"))
}

func TestCheck_JSON(t *testing.T) {
	dir, cfg := project(t, brokenSchema, "")

	stdout, _, err := execute(t, "check", "--config", cfg, "--format", "json", dir)
	require.ErrorIs(t, err, errFailed)

	var out diag.Output
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 1, out.Errors)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, diag.DuplicateKey, out.Diagnostics[0].Code)
	assert.Equal(t, "LightMode", out.Diagnostics[0].Entry)
}

func TestCheck_Clean(t *testing.T) {
	dir, cfg := project(t, flagsSchema, "")

	stdout, stderr, err := execute(t, "check", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.NoFileExists(t, filepath.Join(dir, "flags_prefs.go"))
}

func TestFlagErrors(t *testing.T) {
	dir, cfg := project(t, brokenSchema, "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"color", []string{"check", "--config", cfg, "--color", "maybe", dir}, "--color"},
		{"format", []string{"check", "--config", cfg, "--format", "xml", dir}, "unknown diagnostic format"},
		{"log level", []string{"check", "--config", cfg, "--log-level", "loud", dir}, "--log-level"},
		{"style", []string{"check", "--config", cfg, "--style", "pascal", dir}, "--style"},
		{"target", []string{"check", "--config", cfg, "-t", "cobol", dir}, "unknown target"},
		{"schema", []string{"check", "--config", cfg, filepath.Join(dir, "missing")}, "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "prefgen ")
	assert.Contains(t, stdout, "targets:\n"+
		"  go       1.0.0   Generate Go preference accessors backed by prefstore.Store (.go)\n"+
		"  kotlin   1.0.0   Generate Kotlin accessors over Android SharedPreferences (.kt)\n")
}
