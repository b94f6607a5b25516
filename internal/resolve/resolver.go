// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolve classifies learning-path steps against the topic
// inventory.
package resolve

import (
	"github.com/depthguide/pathcheck/internal/inventory"
	"github.com/depthguide/pathcheck/internal/manifest"
)

// Status classifies one step reference.
type Status string

const (
	StatusValid           Status = "valid"
	StatusMissingContent  Status = "missing-content"
	StatusMissingMetadata Status = "missing-metadata"
	StatusMissingBoth     Status = "missing-both"
)

// Severity separates references that must be fixed before a pass from
// acknowledged, non-blocking gaps.
type Severity string

const (
	SeverityBlocking      Severity = "blocking"
	SeverityInformational Severity = "informational"
)

// Result is the outcome of resolving one step. Exactly one Result
// exists per step per run; results are recomputed from scratch on
// every invocation.
type Result struct {
	PathID   string
	Step     manifest.Step
	Status   Status
	Severity Severity
}

// Resolve classifies a single step. Content existence is checked before
// metadata existence: a dead link in a learning path is a bigger defect
// than a page missing its related-topics sidebar, and the report needs
// to tell the two apart.
func Resolve(pathID string, step manifest.Step, inv *inventory.Inventory) Result {
	depth, _ := inventory.ParseDepth(step.Depth)

	status := StatusValid
	topic, ok := inv.Lookup(step.Topic)
	switch {
	case !ok:
		status = StatusMissingBoth
	case !topic.HasDepth(depth):
		status = StatusMissingContent
	case !topic.HasMetadata:
		status = StatusMissingMetadata
	}

	severity := SeverityInformational
	if step.IsRequired() && status != StatusValid {
		severity = SeverityBlocking
	}

	return Result{PathID: pathID, Step: step, Status: status, Severity: severity}
}

// ResolveAll resolves every step of every path, in manifest order.
func ResolveAll(paths []manifest.LearningPath, inv *inventory.Inventory) []Result {
	var results []Result
	for _, lp := range paths {
		for _, st := range lp.Steps {
			results = append(results, Resolve(lp.ID, st, inv))
		}
	}
	return results
}
