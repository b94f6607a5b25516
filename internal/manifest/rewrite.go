// SPDX-License-Identifier: AGPL-3.0-or-later

package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RewriteFile applies a rename mapping to one manifest file on disk.
// JSON manifests stay JSON and YAML manifests stay YAML; unknown
// annotation fields survive the round trip. When write is false the
// file is left untouched and only the rewrite count is reported.
func RewriteFile(path string, m Mapping, write bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	asJSON := filepath.Ext(path) == ".json"
	doc := make(map[string]any)
	if asJSON {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	changed := m.ApplyToDocument(doc)
	if changed == 0 || !write {
		return changed, nil
	}

	var out []byte
	if asJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return changed, fmt.Errorf("encode %s: %w", path, err)
		}
		out = buf.Bytes()
	} else {
		if out, err = yaml.Marshal(doc); err != nil {
			return changed, fmt.Errorf("encode %s: %w", path, err)
		}
	}
	return changed, atomicWrite(path, out)
}

// atomicWrite replaces path via a temp file and rename so a crashed
// rewrite can never leave a half-written manifest behind.
func atomicWrite(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
