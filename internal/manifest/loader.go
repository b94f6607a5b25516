// SPDX-License-Identifier: AGPL-3.0-or-later

package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/depthguide/pathcheck/internal/inventory"
)

// LoadError records a manifest file that could not be parsed. The run
// continues past it; one corrupt file must never hide problems in the
// other paths.
type LoadError struct {
	File string
	Err  error
}

func (e LoadError) String() string {
	return fmt.Sprintf("manifest %s: %v", e.File, e.Err)
}

// StepDefect records a step whose depth value falls outside the closed
// enumeration. This is a manifest authoring bug, reported distinctly
// from content gaps; the step is excluded from resolution.
type StepDefect struct {
	File   string
	PathID string
	Index  int
	Detail string
}

func (d StepDefect) String() string {
	return fmt.Sprintf("manifest %s (%s) step %d: %s", d.File, d.PathID, d.Index, d.Detail)
}

// LoadResult collects everything a pass over the paths root produced.
type LoadResult struct {
	Paths   []LearningPath
	Errors  []LoadError
	Defects []StepDefect
}

// LoadDir parses every manifest under root in deterministic (lexical)
// order. Only a missing or unreadable root is an error; per-file
// failures are collected in the result.
func LoadDir(root string) (*LoadResult, error) {
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("paths root %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("paths root %s: not a directory", root)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".json", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("paths root %s: %w", root, err)
	}
	sort.Strings(files)

	res := &LoadResult{}
	for _, f := range files {
		rel, relErr := filepath.Rel(root, f)
		if relErr != nil {
			rel = f
		}
		lp, defects, err := loadFile(f, rel)
		if err != nil {
			res.Errors = append(res.Errors, LoadError{File: rel, Err: err})
			continue
		}
		res.Defects = append(res.Defects, defects...)
		res.Paths = append(res.Paths, lp)
	}
	return res, nil
}

// loadFile parses one manifest. YAML is a superset of JSON, so a single
// decoder covers both manifest dialects.
func loadFile(path, rel string) (LearningPath, []StepDefect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LearningPath{}, nil, err
	}

	var lp LearningPath
	if err := yaml.Unmarshal(data, &lp); err != nil {
		return LearningPath{}, nil, fmt.Errorf("parse: %w", err)
	}
	lp.File = rel

	if lp.ID == "" {
		return LearningPath{}, nil, fmt.Errorf("missing required field: id")
	}
	if lp.Category == "" {
		return LearningPath{}, nil, fmt.Errorf("missing required field: category")
	}

	var defects []StepDefect
	steps := lp.Steps[:0]
	for i, st := range lp.Steps {
		if strings.TrimSpace(st.Topic) == "" {
			return LearningPath{}, nil, fmt.Errorf("step %d: missing required field: topic", i)
		}
		if strings.TrimSpace(st.Depth) == "" {
			return LearningPath{}, nil, fmt.Errorf("step %d: missing required field: depth", i)
		}
		if _, ok := inventory.ParseDepth(st.Depth); !ok {
			defects = append(defects, StepDefect{
				File:   rel,
				PathID: lp.ID,
				Index:  i,
				Detail: fmt.Sprintf("invalid depth %q", st.Depth),
			})
			continue
		}
		st.Index = i
		steps = append(steps, st)
	}
	lp.Steps = steps
	return lp, defects, nil
}
