//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to an isolated registry tree and output directory.
type testEnv struct {
	Root    string // registry root containing developers/
	DistDir string // output directory for the built tree
}

// setupTestEnv creates isolated temp directories for a registry run.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	return &testEnv{
		Root:    root,
		DistDir: filepath.Join(root, "dist"),
	}
}

// writeDoc writes one YAML document at rel under the registry root, creating
// parent directories as needed.
func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

// writePublishedDeveloper lays out one developer with a single published
// agent at the given versions, latest last.
func writePublishedDeveloper(t *testing.T, root, namespace, agent string, versions ...string) {
	t.Helper()

	base := "developers/" + namespace
	writeDoc(t, root, base+"/profile.yaml", `developer: `+namespace+`
name: Developer `+namespace+`
type: individual
`)

	agentDir := base + "/agents/" + agent
	writeDoc(t, root, agentDir+"/agent.yaml", `developer: `+namespace+`
name: `+agent+`
description: Integration test agent.
container_image: ghcr.io/`+namespace+`/`+agent+`
container_image_access: public
tags:
  - testing
`)

	var listed strings.Builder
	for _, v := range versions {
		listed.WriteString("  - \"" + v + "\"\n")
	}
	latest := versions[len(versions)-1]
	writeDoc(t, root, agentDir+"/versions.yaml",
		"latest_version: \""+latest+"\"\nlisted_versions:\n"+listed.String())

	for _, v := range versions {
		writeDoc(t, root, agentDir+"/"+v+".yaml", `version: "`+v+`"
readiness_level: beta
autonomy_tier: supervised
`)
	}
}

// readJSON reads one output file under the dist directory.
func readJSON(t *testing.T, distDir, rel string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(distDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return data
}
