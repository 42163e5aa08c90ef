package registry

import (
	"strings"
	"testing"
)

func TestRunAllDevelopers(t *testing.T) {
	root := t.TempDir()
	writeDeveloper(t, root, "carol", "translator")
	writeDeveloper(t, root, "alice", "summarizer")
	writeDeveloper(t, root, "bob", "classifier")

	results, err := Run(Options{Root: root, Workers: 4})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Results come back sorted by namespace regardless of worker order.
	for i, want := range []string{"alice", "bob", "carol"} {
		if results[i].Namespace != want {
			t.Errorf("result %d namespace = %q, want %q", i, results[i].Namespace, want)
		}
		if !results[i].OK() {
			t.Errorf("developer %s failed: %v", want, results[i].Violations)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	writeDeveloper(t, root, "alice", "summarizer")
	writeDeveloper(t, root, "bob", "classifier")
	writeFile(t, root, "developers/bob/profile.yaml", "developer: mallory\nname: Bob\n")

	results, err := Run(Options{Root: root})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !results[0].OK() {
		t.Errorf("alice should pass, got %v", results[0].Violations)
	}
	if results[1].OK() {
		t.Error("bob should fail ownership check")
	}
}

func TestRunScope(t *testing.T) {
	root := t.TempDir()
	writeDeveloper(t, root, "alice", "summarizer")
	writeDeveloper(t, root, "bob", "classifier")

	t.Run("subset", func(t *testing.T) {
		results, err := Run(Options{Root: root, Scope: []string{"bob"}})
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if len(results) != 1 || results[0].Namespace != "bob" {
			t.Fatalf("expected only bob, got %v", results)
		}
	})

	t.Run("unknown namespace", func(t *testing.T) {
		_, err := Run(Options{Root: root, Scope: []string{"mallory"}})
		if err == nil {
			t.Fatal("expected error for unknown namespace")
		}
		if !strings.Contains(err.Error(), "mallory") {
			t.Errorf("error should name the namespace: %v", err)
		}
	})
}

func TestRunMissingRoot(t *testing.T) {
	_, err := Run(Options{Root: t.TempDir()})
	if err == nil {
		t.Fatal("expected error when developers directory is missing")
	}
}

func TestListDevelopersSkipsFiles(t *testing.T) {
	root := t.TempDir()
	writeDeveloper(t, root, "alice", "summarizer")
	writeFile(t, root, "developers/README.yaml", "x: 1\n")

	names, err := ListDevelopers(root)
	if err != nil {
		t.Fatalf("ListDevelopers error: %v", err)
	}
	if len(names) != 1 || names[0] != "alice" {
		t.Errorf("expected [alice], got %v", names)
	}
}
