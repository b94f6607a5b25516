// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit rolls per-step validation results up into the
// corpus-wide report.
package audit

import (
	"sort"

	"github.com/depthguide/pathcheck/internal/manifest"
	"github.com/depthguide/pathcheck/internal/resolve"
)

// Finding is one non-valid reference, flattened for reporting.
type Finding struct {
	Path   string `json:"path"`
	Topic  string `json:"topic"`
	Depth  string `json:"depth"`
	Status string `json:"status"`
}

// PathStats are the per-learning-path totals.
type PathStats struct {
	ID               string `json:"id"`
	Category         string `json:"category"`
	TotalSteps       int    `json:"total_steps"`
	ValidCount       int    `json:"valid_count"`
	InvalidCount     int    `json:"invalid_count"`
	OptionalGapCount int    `json:"optional_gap_count"`
}

// Complete reports whether every step of the path resolved as valid.
func (p PathStats) Complete() bool {
	return p.ValidCount == p.TotalSteps
}

// TopicCount pairs a topic slug with its reference count.
type TopicCount struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Report is the aggregate of one validation run. It is never mutated
// after Build returns; everything in it is derived from the inputs.
type Report struct {
	TotalSteps       int `json:"total_steps"`
	ValidCount       int `json:"valid_count"`
	InvalidCount     int `json:"invalid_count"`
	OptionalGapCount int `json:"optional_gap_count"`

	// TopicReferenceFrequency counts references per topic across all
	// steps regardless of validity; it ranks the blast radius of a
	// missing topic.
	TopicReferenceFrequency map[string]int `json:"topic_reference_frequency"`

	PerPath      []PathStats `json:"per_path"`
	Failures     []Finding   `json:"failures"`
	OptionalGaps []Finding   `json:"optional_gaps"`

	// MetadataGaps lists referenced topics that lack a metadata file,
	// most referenced first: the prioritized authoring to-do list.
	MetadataGaps []TopicCount `json:"metadata_gaps"`

	Warnings []string `json:"warnings"`
}

// Build constructs the report. It is the sole owner of Report
// construction; results arrive in manifest order and that order is
// preserved in the failure lists.
func Build(paths []manifest.LearningPath, results []resolve.Result, warnings []string) *Report {
	r := &Report{
		TopicReferenceFrequency: make(map[string]int),
		PerPath:                 make([]PathStats, 0, len(paths)),
		Failures:                make([]Finding, 0),
		OptionalGaps:            make([]Finding, 0),
		MetadataGaps:            make([]TopicCount, 0),
		Warnings:                warnings,
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}

	pathIdx := make(map[string]int, len(paths))
	for i, lp := range paths {
		r.PerPath = append(r.PerPath, PathStats{ID: lp.ID, Category: lp.Category})
		pathIdx[lp.ID] = i
	}

	metadataGone := make(map[string]bool)
	for _, res := range results {
		r.TotalSteps++
		r.TopicReferenceFrequency[res.Step.Topic]++

		ps := &r.PerPath[pathIdx[res.PathID]]
		ps.TotalSteps++

		switch {
		case res.Status == resolve.StatusValid:
			r.ValidCount++
			ps.ValidCount++
		case res.Severity == resolve.SeverityBlocking:
			r.InvalidCount++
			ps.InvalidCount++
			r.Failures = append(r.Failures, finding(res))
		default:
			r.OptionalGapCount++
			ps.OptionalGapCount++
			r.OptionalGaps = append(r.OptionalGaps, finding(res))
		}

		if res.Status == resolve.StatusMissingMetadata || res.Status == resolve.StatusMissingBoth {
			metadataGone[res.Step.Topic] = true
		}
	}

	for slug := range metadataGone {
		r.MetadataGaps = append(r.MetadataGaps, TopicCount{Slug: slug, Count: r.TopicReferenceFrequency[slug]})
	}
	sort.Slice(r.MetadataGaps, func(i, j int) bool {
		a, b := r.MetadataGaps[i], r.MetadataGaps[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Slug < b.Slug
	})

	return r
}

// CompletePaths counts learning paths whose every step is valid.
func (r *Report) CompletePaths() int {
	n := 0
	for _, ps := range r.PerPath {
		if ps.Complete() {
			n++
		}
	}
	return n
}

func finding(res resolve.Result) Finding {
	return Finding{
		Path:   res.PathID,
		Topic:  res.Step.Topic,
		Depth:  res.Step.Depth,
		Status: string(res.Status),
	}
}
