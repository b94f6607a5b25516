// SPDX-License-Identifier: AGPL-3.0-or-later

// Package inventory discovers which (topic, depth) content pages and
// per-topic metadata files exist on disk.
package inventory

// DepthLevel is one of the three fixed content granularities.
type DepthLevel string

const (
	DepthSurface DepthLevel = "surface"
	DepthMid     DepthLevel = "mid-depth"
	DepthDeep    DepthLevel = "deep-water"
)

// Levels returns the depth levels in canonical order.
func Levels() []DepthLevel {
	return []DepthLevel{DepthSurface, DepthMid, DepthDeep}
}

// ParseDepth maps a raw string onto the closed DepthLevel enumeration.
func ParseDepth(s string) (DepthLevel, bool) {
	switch DepthLevel(s) {
	case DepthSurface, DepthMid, DepthDeep:
		return DepthLevel(s), true
	}
	return "", false
}

// Topic is one named unit of content. Immutable for the duration of a run.
type Topic struct {
	Slug           string
	ExistingDepths map[DepthLevel]bool
	HasMetadata    bool
}

// HasDepth reports whether a content page exists at the given depth.
func (t Topic) HasDepth(d DepthLevel) bool {
	return t.ExistingDepths[d]
}

// Inventory maps topic slugs to their discovered state. A topic appears
// only if it has at least one content page or a metadata file.
type Inventory struct {
	Topics   map[string]Topic
	Warnings []string
}

// Lookup returns the topic for a slug, if discovered.
func (inv *Inventory) Lookup(slug string) (Topic, bool) {
	t, ok := inv.Topics[slug]
	return t, ok
}
