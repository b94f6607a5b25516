// SPDX-License-Identifier: AGPL-3.0-or-later

package inventory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Scan builds the topic inventory from the content and metadata trees.
// A missing root yields an empty inventory; an unreadable subtree is
// recorded as a warning and treated as absent. Scan never mutates the
// filesystem and assumes no concurrent content edits.
func Scan(contentRoot, metadataRoot string) *Inventory {
	inv := &Inventory{Topics: make(map[string]Topic)}
	scanContent(inv, contentRoot)
	scanMetadata(inv, metadataRoot)
	return inv
}

// scanContent walks the content tree for {topic}/{depth}/index.* pages.
// Topics may be nested under arbitrary phase prefixes; resolution is
// keyed by the topic slug alone.
func scanContent(inv *Inventory, root string) {
	root = filepath.Clean(root)
	if _, err := os.Stat(root); err != nil {
		if !os.IsNotExist(err) {
			inv.Warnings = append(inv.Warnings, fmt.Sprintf("content scan: %s: %v", root, err))
		}
		return
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			inv.Warnings = append(inv.Warnings, fmt.Sprintf("content scan: %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), "index.") {
			return nil
		}

		depthDir := filepath.Dir(path)
		depth, ok := ParseDepth(filepath.Base(depthDir))
		if !ok {
			return nil
		}
		topicDir := filepath.Dir(depthDir)
		if topicDir == root {
			// A depth directory directly under the root has no topic slug.
			return nil
		}
		addDepth(inv, filepath.Base(topicDir), depth)
		return nil
	})
}

// scanMetadata lists {slug}.json files under the metadata root.
func scanMetadata(inv *Inventory, root string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			inv.Warnings = append(inv.Warnings, fmt.Sprintf("metadata scan: %s: %v", root, err))
		}
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), ".json")
		t := upsert(inv, slug)
		t.HasMetadata = true
		inv.Topics[slug] = t
	}
}

func addDepth(inv *Inventory, slug string, depth DepthLevel) {
	t := upsert(inv, slug)
	t.ExistingDepths[depth] = true
	inv.Topics[slug] = t
}

func upsert(inv *Inventory, slug string) Topic {
	t, ok := inv.Topics[slug]
	if !ok {
		t = Topic{Slug: slug, ExistingDepths: make(map[DepthLevel]bool)}
	}
	return t
}
