package index

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/agentindex-labs/agentindex/internal/registry"
)

func buildTestAggregate(t *testing.T, sets ...*registry.DeveloperSet) *Aggregate {
	t.Helper()
	agg, err := Build(sets)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return agg
}

// snapshotTree reads every file under dir into a path-to-content map with
// forward-slash relative paths.
func snapshotTree(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", dir, err)
	}
	return files
}

func TestWriteTreeLayout(t *testing.T) {
	agg := buildTestAggregate(t,
		testDeveloper("alice",
			testAgent("alice", "summarizer", "1.1.0", []string{"1.0.0", "1.1.0"}, "1.0.0", "1.1.0")),
		testDeveloper("bob",
			testAgent("bob", "classifier", "2.0.0", []string{"2.0.0"}, "2.0.0")))

	dist := filepath.Join(t.TempDir(), "dist")
	if err := Write(agg, dist); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	files := snapshotTree(t, dist)
	want := []string{
		"index.json",
		"developers.json",
		"@alice/profile.json",
		"@alice/agents.json",
		"@alice/summarizer/metadata.json",
		"@alice/summarizer/1.0.0/metadata.json",
		"@alice/summarizer/1.1.0/metadata.json",
		"@bob/profile.json",
		"@bob/agents.json",
		"@bob/classifier/metadata.json",
		"@bob/classifier/2.0.0/metadata.json",
	}
	if len(files) != len(want) {
		var got []string
		for path := range files {
			got = append(got, path)
		}
		sort.Strings(got)
		t.Fatalf("expected %d files, got %d: %v", len(want), len(got), got)
	}
	for _, path := range want {
		if _, ok := files[path]; !ok {
			t.Errorf("missing output file %s", path)
		}
	}

	var idx AgentsIndexDoc
	if err := json.Unmarshal(files["index.json"], &idx); err != nil {
		t.Fatalf("index.json unmarshal: %v", err)
	}
	if idx.Count != 2 || len(idx.Agents) != 2 {
		t.Errorf("index.json wrong: count=%d agents=%d", idx.Count, len(idx.Agents))
	}

	if !bytes.HasSuffix(files["index.json"], []byte("\n")) {
		t.Error("output files should end with a newline")
	}
}

func TestWriteIdempotent(t *testing.T) {
	set := testDeveloper("alice",
		testAgent("alice", "summarizer", "1.0.0", []string{"1.0.0"}, "1.0.0"))
	dist := filepath.Join(t.TempDir(), "dist")

	if err := Write(buildTestAggregate(t, set), dist); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	first := snapshotTree(t, dist)

	if err := Write(buildTestAggregate(t, set), dist); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	second := snapshotTree(t, dist)

	if len(first) != len(second) {
		t.Fatalf("file count changed: %d then %d", len(first), len(second))
	}
	for path, data := range first {
		if !bytes.Equal(data, second[path]) {
			t.Errorf("%s changed between identical builds", path)
		}
	}
}

func TestWriteOrderIndependent(t *testing.T) {
	alice := testDeveloper("alice",
		testAgent("alice", "summarizer", "1.0.0", []string{"1.0.0"}, "1.0.0"))
	bob := testDeveloper("bob",
		testAgent("bob", "classifier", "2.0.0", []string{"2.0.0"}, "2.0.0"))

	distA := filepath.Join(t.TempDir(), "dist")
	if err := Write(buildTestAggregate(t, alice, bob), distA); err != nil {
		t.Fatal(err)
	}
	distB := filepath.Join(t.TempDir(), "dist")
	if err := Write(buildTestAggregate(t, bob, alice), distB); err != nil {
		t.Fatal(err)
	}

	treeA := snapshotTree(t, distA)
	treeB := snapshotTree(t, distB)
	if len(treeA) != len(treeB) {
		t.Fatalf("tree sizes differ: %d vs %d", len(treeA), len(treeB))
	}
	for path, data := range treeA {
		if !bytes.Equal(data, treeB[path]) {
			t.Errorf("%s differs between input orderings", path)
		}
	}
}

func TestWriteReplacesStaleOutput(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")

	both := buildTestAggregate(t,
		testDeveloper("alice",
			testAgent("alice", "summarizer", "1.0.0", []string{"1.0.0"}, "1.0.0")),
		testDeveloper("bob",
			testAgent("bob", "classifier", "2.0.0", []string{"2.0.0"}, "2.0.0")))
	if err := Write(both, dist); err != nil {
		t.Fatal(err)
	}

	// Bob leaves the registry; the rebuild must not keep the old folder.
	only := buildTestAggregate(t,
		testDeveloper("alice",
			testAgent("alice", "summarizer", "1.0.0", []string{"1.0.0"}, "1.0.0")))
	if err := Write(only, dist); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dist, "@bob")); !os.IsNotExist(err) {
		t.Error("stale @bob directory survived the rebuild")
	}
	if _, err := os.Stat(filepath.Join(dist, "@alice", "profile.json")); err != nil {
		t.Errorf("expected @alice/profile.json to exist: %v", err)
	}
}

func TestWriteEmptyAggregate(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	if err := Write(buildTestAggregate(t), dist); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dist, IndexFile))
	if err != nil {
		t.Fatal(err)
	}
	var idx AgentsIndexDoc
	if err := json.Unmarshal(data, &idx); err != nil {
		t.Fatal(err)
	}
	if idx.Agents == nil {
		t.Error("agents should serialize as an empty list, not null")
	}
}

func TestWriteAgentsFileIsSummaryList(t *testing.T) {
	agg := buildTestAggregate(t,
		testDeveloper("alice",
			testAgent("alice", "summarizer", "1.0.0", []string{"1.0.0"}, "1.0.0")))
	dist := filepath.Join(t.TempDir(), "dist")
	if err := Write(agg, dist); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dist, "@alice", AgentsOut))
	if err != nil {
		t.Fatal(err)
	}
	var summaries []AgentSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		t.Fatalf("agents.json unmarshal: %v", err)
	}
	if len(summaries) != 1 || summaries[0].IndexName != "@alice/summarizer" {
		t.Errorf("unexpected summaries: %+v", summaries)
	}
}
