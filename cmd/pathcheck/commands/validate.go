// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/depthguide/pathcheck/cmd/pathcheck/internal/clierr"
	"github.com/depthguide/pathcheck/internal/audit"
	"github.com/depthguide/pathcheck/internal/inventory"
	"github.com/depthguide/pathcheck/internal/manifest"
	"github.com/depthguide/pathcheck/internal/report"
	"github.com/depthguide/pathcheck/internal/resolve"
)

// runValidate is the whole engine: scan + load, resolve, aggregate,
// emit. The scanner and loader read disjoint subtrees and fill
// disjoint structures, so they run concurrently and join before
// resolution starts.
func runValidate(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(viper.GetString("format"))
	if err != nil {
		return clierr.Wrap(report.ExitFatal, "invalid --format", err)
	}

	var (
		inv    *inventory.Inventory
		loaded *manifest.LoadResult
	)
	var g errgroup.Group
	g.Go(func() error {
		inv = inventory.Scan(viper.GetString("content-root"), viper.GetString("metadata-root"))
		return nil
	})
	g.Go(func() error {
		var err error
		loaded, err = manifest.LoadDir(viper.GetString("paths-root"))
		return err
	})
	if err := g.Wait(); err != nil {
		return clierr.Wrap(report.ExitFatal, "loading learning paths", err)
	}

	results := resolve.ResolveAll(loaded.Paths, inv)
	rep := audit.Build(loaded.Paths, results, collectWarnings(inv, loaded))

	em := &report.Emitter{Out: cmd.OutOrStdout(), Format: format}
	code, err := em.Emit(rep)
	if err != nil {
		return clierr.Wrap(report.ExitFatal, "report generation failed", err)
	}
	if code != report.ExitOK {
		return clierr.Newf(code, "%d blocking invalid reference(s)", rep.InvalidCount)
	}
	return nil
}

// collectWarnings flattens scan warnings, manifest load errors, and
// step-level manifest defects into one ordered warnings list.
func collectWarnings(inv *inventory.Inventory, loaded *manifest.LoadResult) []string {
	var warnings []string
	warnings = append(warnings, inv.Warnings...)
	for _, le := range loaded.Errors {
		warnings = append(warnings, le.String())
	}
	for _, d := range loaded.Defects {
		warnings = append(warnings, d.String())
	}
	return warnings
}
