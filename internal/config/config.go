// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads prefgen.toml project files.
//
// A project file sits at the root of the tree it configures and is found by
// searching upward from the working directory:
//
//	schemas = ["settings", "prefs.yaml"]
//	targets = ["go", "kotlin"]
//	output = "gen"
//	style = "bean"
//	jobs = 4
//	kotlin_package = "com.example.settings"
//
//	[[adapter]]
//	name = "point"
//	type = "geo.Point"
//	storage = "string"
//	codec = "geo.PointCodec{}"
//	imports = { geo = "example.com/app/geo" }
//
// Relative paths are resolved against the directory of the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/internal/scan"
	"github.com/albertocavalcante/prefgen/model"
)

// FileName is the name of the project file.
const FileName = "prefgen.toml"

// ErrInvalid is wrapped by every validation error of a project file.
var ErrInvalid = errors.New("invalid project file")

// Config is the content of a project file.
type Config struct {
	// Path is the file the config was loaded from. Empty for the default config.
	Path string `toml:"-"`

	// Root is the directory relative paths are resolved against.
	Root string `toml:"-"`

	Schemas       []string  `toml:"schemas"`
	Targets       []string  `toml:"targets"`
	Groups        []string  `toml:"groups"`
	Package       string    `toml:"package"`
	Output        string    `toml:"output"`
	Style         string    `toml:"style"`
	Jobs          int       `toml:"jobs"`
	KotlinPackage string    `toml:"kotlin_package"`
	StoreImport   string    `toml:"store_import"`
	Adapters      []Adapter `toml:"adapter"`
}

// Adapter registers a codec for a declared type, as //prefs:adapter does
// in a Go schema.
type Adapter struct {
	Name    string            `toml:"name"`
	Type    string            `toml:"type"`
	Storage string            `toml:"storage"`
	Codec   string            `toml:"codec"`
	Imports map[string]string `toml:"imports"`
}

// Find searches startDir and its parents for a project file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the project file governing startDir, or returns an empty
// config rooted at startDir when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		return &Config{Root: root}, nil
	}
	return Load(path)
}

// Load reads and validates a project file.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	cfg.Path = abs
	cfg.Root = filepath.Dir(abs)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := ir.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	names := make(map[string]bool)
	for i, a := range c.Adapters {
		switch {
		case a.Name == "":
			return fmt.Errorf("adapter #%d: missing name", i+1)
		case a.Type == "":
			return fmt.Errorf("adapter %q: missing type", a.Name)
		case a.Codec == "":
			return fmt.Errorf("adapter %q: missing codec", a.Name)
		}
		if _, ok := model.ParseStorage(a.Storage); !ok {
			return fmt.Errorf("adapter %q: unknown storage %q", a.Name, a.Storage)
		}
		if names[a.Name] {
			return fmt.Errorf("adapter %q: declared twice", a.Name)
		}
		names[a.Name] = true
	}
	return nil
}

// Resolve returns path relative to the config root, or path itself when
// it is absolute.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// SchemaPaths returns the schema paths, resolved.
func (c *Config) SchemaPaths() []string {
	paths := make([]string, len(c.Schemas))
	for i, s := range c.Schemas {
		paths[i] = c.Resolve(s)
	}
	return paths
}

// StyleValue returns the parsed accessor style.
func (c *Config) StyleValue() ir.Style {
	s, _ := ir.ParseStyle(c.Style)
	return s
}

// GeneratorOptions returns the target options set by the file.
func (c *Config) GeneratorOptions() map[string]string {
	opts := make(map[string]string)
	if c.KotlinPackage != "" {
		opts["kotlin_package"] = c.KotlinPackage
	}
	if c.StoreImport != "" {
		opts["store_import"] = c.StoreImport
	}
	return opts
}

// RawAdapters returns the adapters as scan registrations positioned at
// the project file.
func (c *Config) RawAdapters() []*scan.RawAdapter {
	adapters := make([]*scan.RawAdapter, 0, len(c.Adapters))
	for _, a := range c.Adapters {
		adapters = append(adapters, &scan.RawAdapter{
			Name:    a.Name,
			Type:    a.Type,
			Storage: a.Storage,
			Codec:   a.Codec,
			Imports: a.Imports,
			Pos:     model.Pos{File: c.Path},
		})
	}
	return adapters
}

