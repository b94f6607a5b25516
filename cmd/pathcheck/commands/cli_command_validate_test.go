// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depthguide/pathcheck/cmd/pathcheck/internal/clierr"
)

// corpus builds a content/metadata/learning-paths tree under a temp dir.
type corpus struct {
	t    *testing.T
	root string
}

func newCorpus(t *testing.T) *corpus {
	t.Helper()
	return &corpus{t: t, root: t.TempDir()}
}

func (c *corpus) addContent(phase, topic, depth string) {
	c.t.Helper()
	path := filepath.Join(c.root, "content", phase, topic, depth, "index.md")
	require.NoError(c.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(c.t, os.WriteFile(path, []byte("# "+topic+"\n"), 0o644))
}

func (c *corpus) addMetadata(topic string) {
	c.t.Helper()
	path := filepath.Join(c.root, "metadata", "topics", topic+".json")
	require.NoError(c.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(c.t, os.WriteFile(path, []byte(`{"related": []}`), 0o644))
}

func (c *corpus) addManifest(name, body string) {
	c.t.Helper()
	path := filepath.Join(c.root, "learning-paths", name)
	require.NoError(c.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(c.t, os.WriteFile(path, []byte(body), 0o644))
}

func (c *corpus) run(extra ...string) (string, error) {
	c.t.Helper()
	args := append([]string{
		"--content-root", filepath.Join(c.root, "content"),
		"--metadata-root", filepath.Join(c.root, "metadata", "topics"),
		"--paths-root", filepath.Join(c.root, "learning-paths"),
	}, extra...)

	cmd := NewRootCmd()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateAllValid(t *testing.T) {
	c := newCorpus(t)
	c.addContent("fundamentals", "threat-modeling", "surface")
	c.addMetadata("threat-modeling")
	c.addManifest("security.json", `{
  "id": "security-basics",
  "category": "track",
  "steps": [{"topic": "threat-modeling", "depth": "surface", "required": true}]
}`)

	out, err := c.run()
	require.NoError(t, err)
	assert.Equal(t, 0, clierr.ExitCodeOf(err))
	assert.Contains(t, out, "PASS: no blocking invalid references")
}

func TestValidateOptionalGapStillPasses(t *testing.T) {
	c := newCorpus(t)
	c.addManifest("frontend.yaml", `
id: frontend-journey
category: suggested-journey
steps:
  - topic: frontend-architecture
    depth: mid-depth
    required: false
`)

	out, err := c.run()
	require.NoError(t, err)
	assert.Contains(t, out, "missing-both")
	assert.Contains(t, out, "Optional gaps (informational):")
	assert.Contains(t, out, "PASS")
}

func TestValidateBlockingReferenceFails(t *testing.T) {
	c := newCorpus(t)
	c.addContent("fundamentals", "threat-modeling", "surface")
	c.addMetadata("threat-modeling")
	c.addManifest("clean.yaml", "id: clean\ncategory: track\nsteps:\n  - topic: threat-modeling\n    depth: surface\n")
	c.addManifest("dirty.yaml", "id: dirty\ncategory: track\nsteps:\n  - topic: ghost-topic\n    depth: surface\n")

	out, err := c.run()
	require.Error(t, err)
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
	assert.Contains(t, out, "Failures (blocking):")
	assert.Contains(t, out, "dirty: ghost-topic@surface (missing-both)")
	assert.Contains(t, out, "paths valid:    1/2")
}

func TestValidateCorruptManifestIsWarningNotFailure(t *testing.T) {
	c := newCorpus(t)
	c.addContent("fundamentals", "threat-modeling", "surface")
	c.addMetadata("threat-modeling")
	c.addManifest("good.yaml", "id: good\ncategory: track\nsteps:\n  - topic: threat-modeling\n    depth: surface\n")
	c.addManifest("corrupt.json", `{"id": "nope",`)

	out, err := c.run()
	require.NoError(t, err)
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "corrupt.json")
	assert.Contains(t, out, "PASS")
}

func TestValidateMissingPathsRootIsFatal(t *testing.T) {
	cmd := NewRootCmd()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--paths-root", filepath.Join(t.TempDir(), "does-not-exist")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, clierr.ExitCodeOf(err))
}

func TestValidateJSONFormat(t *testing.T) {
	c := newCorpus(t)
	c.addContent("fundamentals", "threat-modeling", "surface")
	c.addMetadata("threat-modeling")
	c.addManifest("p.yaml", "id: p\ncategory: track\nsteps:\n  - topic: threat-modeling\n    depth: surface\n")

	out, err := c.run("--format", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.EqualValues(t, 1, decoded["total_steps"])
	assert.EqualValues(t, 0, decoded["invalid_count"])
}

func TestValidateUnknownFormatIsFatal(t *testing.T) {
	c := newCorpus(t)
	c.addManifest("p.yaml", "id: p\ncategory: track\nsteps: []\n")

	_, err := c.run("--format", "xml")
	require.Error(t, err)
	assert.Equal(t, 2, clierr.ExitCodeOf(err))
}

// Renaming a slug across manifests and re-validating against a content
// tree that only has the new slug leaves no trace of the old slug in
// the report.
func TestRenameRoundTrip(t *testing.T) {
	c := newCorpus(t)
	c.addContent("practices", "unit-integration-testing", "surface")
	c.addMetadata("unit-integration-testing")
	c.addManifest("qa.json", `{
  "id": "qa-track",
  "category": "track",
  "steps": [{"topic": "unit-testing", "depth": "surface"}]
}`)

	out, err := c.run()
	require.Error(t, err)
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
	assert.Contains(t, out, "unit-testing@surface")

	cmd := NewRootCmd()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"rename",
		"--paths-root", filepath.Join(c.root, "learning-paths"),
		"--map", "unit-testing=unit-integration-testing",
		"--write",
	})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "rewrote 1 step(s)")

	out, err = c.run()
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "unit-testing@")
}

// Unchanged filesystem and manifests produce byte-identical reports.
func TestValidateDeterministic(t *testing.T) {
	c := newCorpus(t)
	c.addContent("fundamentals", "threat-modeling", "surface")
	c.addManifest("a.yaml", "id: a\ncategory: track\nsteps:\n  - topic: threat-modeling\n    depth: surface\n  - topic: ghost\n    depth: deep-water\n    required: false\n")
	c.addManifest("b.yaml", "id: b\ncategory: persona\nsteps:\n  - topic: threat-modeling\n    depth: mid-depth\n")

	first, err1 := c.run()
	second, err2 := c.run()
	assert.Equal(t, first, second)
	assert.Equal(t, clierr.ExitCodeOf(err1), clierr.ExitCodeOf(err2))

	j1, _ := c.run("--format", "json")
	j2, _ := c.run("--format", "json")
	assert.Equal(t, j1, j2)
}
