// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package diag

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Format selects the diagnostic output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown diagnostic format %q (want text or json)", s)
}

// RenderOptions configures Render.
type RenderOptions struct {
	Format Format
	Color  bool
}

// Output is the JSON document written by Render in FormatJSON.
type Output struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Errors      int          `json:"errors"`
	Warnings    int          `json:"warnings"`
}

// Render writes ds to w. Text output has one line per diagnostic:
//
//	file:line:col: severity[code]: message
func Render(w io.Writer, ds []Diagnostic, opts RenderOptions) error {
	if opts.Format == FormatJSON {
		out := Output{Diagnostics: ds}
		if out.Diagnostics == nil {
			out.Diagnostics = []Diagnostic{}
		}
		out.Errors, out.Warnings = tally(ds)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan)
	posColor := color.New(color.Bold)
	for _, c := range []*color.Color{errColor, warnColor, infoColor, posColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range ds {
		sevColor := infoColor
		switch d.Severity {
		case SevError:
			sevColor = errColor
		case SevWarning:
			sevColor = warnColor
		}
		sev := sevColor.Sprintf("%s[%s]", d.Severity, d.Code)
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", posColor.Sprint(d.Pos), sev, d.Message); err != nil {
			return err
		}
	}
	return nil
}

// Summary returns a one-line count of errors and warnings, or "" when ds
// has neither.
func Summary(ds []Diagnostic) string {
	errs, warns := tally(ds)
	if errs == 0 && warns == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s, %d %s", errs, plural(errs, "error"), warns, plural(warns, "warning"))
}

func tally(ds []Diagnostic) (errs, warns int) {
	for _, d := range ds {
		switch d.Severity {
		case SevError:
			errs++
		case SevWarning:
			warns++
		}
	}
	return errs, warns
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
