// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders an audit report for humans (text) and CI
// pipelines (json + exit code).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/depthguide/pathcheck/internal/audit"
)

// Format selects the output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a raw string onto the closed Format enumeration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want text or json)", s)
}

// Exit codes of the validation run. Optional gaps never affect the
// exit code; that contract is what lets CI treat acknowledged gaps as
// a passing build.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitFatal   = 2
)

// Emitter renders an audit report to an injected writer. It holds no
// state between calls and performs no side effects beyond writing.
type Emitter struct {
	Out    io.Writer
	Format Format
}

// Emit renders the report and returns the process exit code. It never
// panics; any internal render failure is returned as an error and maps
// to ExitFatal at the CLI boundary.
func (e *Emitter) Emit(r *audit.Report) (code int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			code, err = ExitFatal, fmt.Errorf("report rendering panicked: %v", rec)
		}
	}()

	switch e.Format {
	case FormatJSON:
		err = e.emitJSON(r)
	default:
		err = e.emitText(r)
	}
	if err != nil {
		return ExitFatal, err
	}
	if r.InvalidCount > 0 {
		return ExitInvalid, nil
	}
	return ExitOK, nil
}

func (e *Emitter) emitJSON(r *audit.Report) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// emitText writes the human-readable sections in a fixed order:
// summary, per-path breakdown, blocking failures, optional gaps,
// warnings, metadata to-do list, pass/fail line. Sections never
// conflate: CI reads the final exit code, humans read the breakdown.
func (e *Emitter) emitText(r *audit.Report) error {
	w := &errWriter{w: e.Out}

	w.printf("Learning path reference audit\n")
	w.printf("\n")
	w.printf("Summary:\n")
	w.printf("  steps checked:  %d\n", r.TotalSteps)
	w.printf("  valid:          %d\n", r.ValidCount)
	w.printf("  blocking:       %d\n", r.InvalidCount)
	w.printf("  optional gaps:  %d\n", r.OptionalGapCount)
	w.printf("  paths valid:    %d/%d\n", r.CompletePaths(), len(r.PerPath))

	if len(r.PerPath) > 0 {
		w.printf("\n")
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"Path", "Category", "Steps", "Valid", "Blocking", "Optional"})
		for _, ps := range r.PerPath {
			tw.AppendRow(table.Row{ps.ID, ps.Category, ps.TotalSteps, ps.ValidCount, ps.InvalidCount, ps.OptionalGapCount})
		}
		tw.Render()
	}

	if len(r.Failures) > 0 {
		w.printf("\nFailures (blocking):\n")
		for _, f := range r.Failures {
			w.printf("  - %s: %s@%s (%s)\n", f.Path, f.Topic, f.Depth, f.Status)
		}
	}

	if len(r.OptionalGaps) > 0 {
		w.printf("\nOptional gaps (informational):\n")
		for _, f := range r.OptionalGaps {
			w.printf("  - %s: %s@%s (%s)\n", f.Path, f.Topic, f.Depth, f.Status)
		}
	}

	if len(r.Warnings) > 0 {
		w.printf("\nWarnings:\n")
		for _, warn := range r.Warnings {
			w.printf("  - %s\n", warn)
		}
	}

	if len(r.MetadataGaps) > 0 {
		w.printf("\nMetadata to create (most referenced first):\n")
		for _, tc := range r.MetadataGaps {
			w.printf("  - %s (%d reference(s))\n", tc.Slug, tc.Count)
		}
	}

	w.printf("\n")
	if r.InvalidCount > 0 {
		w.printf("FAIL: %d blocking invalid reference(s)\n", r.InvalidCount)
	} else {
		w.printf("PASS: no blocking invalid references\n")
	}
	return w.err
}

// errWriter latches the first write error so section rendering stays
// linear instead of threading error returns through every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}

func (ew *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(ew, format, args...)
}
