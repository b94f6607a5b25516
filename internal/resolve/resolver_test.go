// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depthguide/pathcheck/internal/inventory"
	"github.com/depthguide/pathcheck/internal/manifest"
)

func testInventory() *inventory.Inventory {
	return &inventory.Inventory{Topics: map[string]inventory.Topic{
		"threat-modeling": {
			Slug:           "threat-modeling",
			ExistingDepths: map[inventory.DepthLevel]bool{inventory.DepthSurface: true},
			HasMetadata:    true,
		},
		"api-design": {
			Slug:           "api-design",
			ExistingDepths: map[inventory.DepthLevel]bool{inventory.DepthSurface: true, inventory.DepthMid: true},
			HasMetadata:    false,
		},
	}}
}

func boolPtr(b bool) *bool { return &b }

func TestResolveClassification(t *testing.T) {
	inv := testInventory()

	tests := []struct {
		name     string
		step     manifest.Step
		status   Status
		severity Severity
	}{
		{
			name:     "content and metadata present",
			step:     manifest.Step{Topic: "threat-modeling", Depth: "surface"},
			status:   StatusValid,
			severity: SeverityInformational,
		},
		{
			name:     "topic absent entirely",
			step:     manifest.Step{Topic: "frontend-architecture", Depth: "mid-depth"},
			status:   StatusMissingBoth,
			severity: SeverityBlocking,
		},
		{
			name:     "content missing at requested depth only",
			step:     manifest.Step{Topic: "threat-modeling", Depth: "deep-water"},
			status:   StatusMissingContent,
			severity: SeverityBlocking,
		},
		{
			name:     "content present but metadata missing",
			step:     manifest.Step{Topic: "api-design", Depth: "mid-depth"},
			status:   StatusMissingMetadata,
			severity: SeverityBlocking,
		},
		{
			name:     "optional broken step is informational",
			step:     manifest.Step{Topic: "frontend-architecture", Depth: "mid-depth", Required: boolPtr(false)},
			status:   StatusMissingBoth,
			severity: SeverityInformational,
		},
		{
			name:     "explicit required true stays blocking",
			step:     manifest.Step{Topic: "threat-modeling", Depth: "deep-water", Required: boolPtr(true)},
			status:   StatusMissingContent,
			severity: SeverityBlocking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve("some-path", tt.step, inv)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.severity, res.Severity)
			assert.Equal(t, "some-path", res.PathID)
		})
	}
}

// Content existence outranks metadata existence: a topic missing both
// the requested depth and its metadata file classifies as
// missing-content, not missing-metadata.
func TestResolveContentCheckedBeforeMetadata(t *testing.T) {
	inv := testInventory()
	res := Resolve("p", manifest.Step{Topic: "api-design", Depth: "deep-water"}, inv)
	assert.Equal(t, StatusMissingContent, res.Status)
}

func TestResolveAllCompletenessAndDeterminism(t *testing.T) {
	inv := testInventory()
	paths := []manifest.LearningPath{
		{ID: "a", Steps: []manifest.Step{
			{Topic: "threat-modeling", Depth: "surface"},
			{Topic: "api-design", Depth: "mid-depth"},
		}},
		{ID: "b", Steps: []manifest.Step{
			{Topic: "frontend-architecture", Depth: "surface"},
		}},
	}

	first := ResolveAll(paths, inv)
	require.Len(t, first, 3)

	// Unchanged inputs resolve identically on every run.
	second := ResolveAll(paths, inv)
	assert.Equal(t, first, second)
}
