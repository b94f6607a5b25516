// SPDX-License-Identifier: AGPL-3.0-or-later

package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping maps old topic slugs to their replacements. Applying a
// mapping only ever rewrites whole slugs; partial-word matches are
// impossible by construction.
type Mapping map[string]string

// ParsePairs builds a Mapping from "old=new" pairs.
func ParsePairs(pairs []string) (Mapping, error) {
	m := make(Mapping, len(pairs))
	for _, p := range pairs {
		old, repl, ok := strings.Cut(p, "=")
		if !ok || old == "" || repl == "" {
			return nil, fmt.Errorf("invalid mapping %q (want old=new)", p)
		}
		m[old] = repl
	}
	return m, nil
}

// LoadMappingFile reads a YAML mapping file of the form "old: new".
func LoadMappingFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	return m, nil
}

// Apply returns a copy of the learning path with mapped step topics
// rewritten, plus the number of rewrites. The input is not mutated.
func (m Mapping) Apply(lp LearningPath) (LearningPath, int) {
	out := lp
	out.Steps = make([]Step, len(lp.Steps))
	copy(out.Steps, lp.Steps)

	changed := 0
	for i, st := range out.Steps {
		if repl, ok := m[st.Topic]; ok {
			out.Steps[i].Topic = repl
			changed++
		}
	}
	return out, changed
}

// ApplyToDocument rewrites step topics inside a decoded manifest
// document in place, preserving any annotation fields validation does
// not know about. Returns the number of rewrites.
func (m Mapping) ApplyToDocument(doc map[string]any) int {
	steps, ok := doc["steps"].([]any)
	if !ok {
		return 0
	}
	changed := 0
	for _, raw := range steps {
		step, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		topic, ok := step["topic"].(string)
		if !ok {
			continue
		}
		if repl, ok := m[topic]; ok {
			step["topic"] = repl
			changed++
		}
	}
	return changed
}
