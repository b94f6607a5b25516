// SPDX-License-Identifier: AGPL-3.0-or-later

// Package manifest loads learning-path manifests into typed values.
package manifest

// Step is a single topic reference inside a learning path. Unknown
// annotation fields in the source document are ignored for forward
// compatibility; only topic and depth are required.
type Step struct {
	Topic    string `yaml:"topic" json:"topic"`
	Depth    string `yaml:"depth" json:"depth"`
	Required *bool  `yaml:"required" json:"required,omitempty"`
	Notes    string `yaml:"notes" json:"notes,omitempty"`

	// Index is the step's position in the manifest, assigned at load time.
	Index int `yaml:"-" json:"-"`
}

// IsRequired reports whether the step blocks validation when broken.
// Absent means required; required=false marks an acknowledged gap.
func (s Step) IsRequired() bool {
	return s.Required == nil || *s.Required
}

// LearningPath is one parsed manifest: an ordered route through the
// corpus. Read-only input to resolution; never mutated after load.
type LearningPath struct {
	ID       string `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Steps    []Step `yaml:"steps" json:"steps"`

	// File is the manifest path relative to the paths root.
	File string `yaml:"-" json:"-"`
}
