package registry

import (
	"strings"
	"testing"
)

func publishedAgent(namespace, name string, versions *VersionSet, stems ...string) *AgentSet {
	agent := &AgentSet{
		Name: name,
		Dir:  DevelopersDir + "/" + namespace + "/" + AgentsDir + "/" + name,
		Identity: &AgentIdentity{
			Developer:      namespace,
			Name:           name,
			Description:    "test agent",
			ContainerImage: "ghcr.io/" + namespace + "/" + name,
		},
		Versions: versions,
	}
	for _, stem := range stems {
		agent.Specs = append(agent.Specs, SpecFile{
			File: agent.Dir + "/" + stem + YAMLExt,
			Stem: stem,
			Spec: &VersionSpec{Version: stem},
		})
	}
	return agent
}

func developerSet(namespace string, agents ...*AgentSet) *DeveloperSet {
	return &DeveloperSet{
		Namespace: namespace,
		Dir:       DevelopersDir + "/" + namespace,
		Profile:   &DeveloperProfile{Developer: namespace, Name: "Test Developer"},
		Agents:    agents,
	}
}

func assertViolation(t *testing.T, violations []Violation, substr string) {
	t.Helper()
	for _, v := range violations {
		if strings.Contains(v.Message, substr) {
			return
		}
	}
	t.Errorf("expected a violation containing %q, got %d violations: %v", substr, len(violations), violations)
}

func TestCheckReferencesCleanDeveloper(t *testing.T) {
	set := developerSet("alice",
		publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.1.0", ListedVersions: []string{"1.0.0", "1.1.0"}},
			"1.0.0", "1.1.0"))

	if violations := CheckReferences(set); len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestCheckReferencesNamespaceGrammar(t *testing.T) {
	for _, namespace := range []string{"-alice", "alice-", "al ice", ""} {
		t.Run(namespace, func(t *testing.T) {
			set := developerSet(namespace)
			set.Profile.Developer = namespace
			assertViolation(t, CheckReferences(set), "invalid namespace folder name")
		})
	}
}

func TestCheckReferencesProfileOwnership(t *testing.T) {
	set := developerSet("alice")
	set.Profile.Developer = "bob"
	assertViolation(t, CheckReferences(set), `developer field "bob" does not match folder name "alice"`)
}

func TestCheckReferencesIdentityMismatch(t *testing.T) {
	t.Run("wrong developer", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0", ListedVersions: []string{"1.0.0"}}, "1.0.0")
		agent.Identity.Developer = "mallory"
		assertViolation(t, CheckReferences(developerSet("alice", agent)), `developer field "mallory" does not match folder`)
	})

	t.Run("wrong name", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0", ListedVersions: []string{"1.0.0"}}, "1.0.0")
		agent.Identity.Name = "translator"
		assertViolation(t, CheckReferences(developerSet("alice", agent)), `name field "translator" does not match directory`)
	})
}

func TestCheckReferencesAgentCaseCollision(t *testing.T) {
	versions := &VersionSet{LatestVersion: "1.0.0", ListedVersions: []string{"1.0.0"}}
	set := developerSet("alice",
		publishedAgent("alice", "summarizer", versions, "1.0.0"),
		publishedAgent("alice", "Summarizer", versions, "1.0.0"))
	assertViolation(t, CheckReferences(set), "agent name collides")
}

func TestCheckReferencesVersionPointers(t *testing.T) {
	t.Run("dangling latest", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "2.0.0", ListedVersions: []string{"1.0.0", "2.0.0"}}, "1.0.0")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), `latest_version "2.0.0" has no version file`)
	})

	t.Run("dangling listed", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0", ListedVersions: []string{"1.0.0", "1.5.0"}}, "1.0.0")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), `listed_versions contains "1.5.0"`)
	})

	t.Run("latest not listed", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "2.0.0", ListedVersions: []string{"1.0.0"}}, "1.0.0", "2.0.0")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), `latest_version "2.0.0" is not in listed_versions`)
	})

	t.Run("listed without latest", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{ListedVersions: []string{"1.0.0"}}, "1.0.0")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), "latest_version is unset")
	})

	t.Run("latest with empty listed", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0"}, "1.0.0")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), "listed_versions is empty")
	})

	// Version files without publication pointers are allowed: the agent is a
	// draft and stays out of the index.
	t.Run("draft agent is clean", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer", &VersionSet{}, "0.1.0")
		if violations := CheckReferences(developerSet("alice", agent)); len(violations) != 0 {
			t.Errorf("expected no violations for draft agent, got %v", violations)
		}
	})
}

func TestCheckReferencesVersionFilenames(t *testing.T) {
	t.Run("non-semver stem", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0", ListedVersions: []string{"1.0.0"}}, "1.0.0", "v1.0")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), "not a valid semantic version")
	})

	t.Run("stem mismatch", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0", ListedVersions: []string{"1.0.0"}}, "1.0.0")
		agent.Specs[0].Spec.Version = "1.0.1"
		assertViolation(t, CheckReferences(developerSet("alice", agent)), `version field "1.0.1" does not match filename`)
	})

	t.Run("case-insensitive stem collision", func(t *testing.T) {
		agent := publishedAgent("alice", "summarizer",
			&VersionSet{LatestVersion: "1.0.0-rc.1", ListedVersions: []string{"1.0.0-rc.1"}},
			"1.0.0-rc.1", "1.0.0-RC.1")
		assertViolation(t, CheckReferences(developerSet("alice", agent)), "version filename collides")
	})
}

func TestCheckReferencesSkipsNilDocuments(t *testing.T) {
	// Documents that failed parsing or schema validation are nil; referential
	// checks must not panic or double-report them.
	set := &DeveloperSet{
		Namespace: "alice",
		Dir:       DevelopersDir + "/alice",
		Agents: []*AgentSet{{
			Name: "summarizer",
			Dir:  DevelopersDir + "/alice/" + AgentsDir + "/summarizer",
		}},
	}
	if violations := CheckReferences(set); len(violations) != 0 {
		t.Errorf("expected no violations for nil documents, got %v", violations)
	}
}

func TestOwnsFolder(t *testing.T) {
	cases := []struct {
		folder, declared string
		want             bool
	}{
		{"alice", "alice", true},
		{"alice", "bob", false},
		{"alice", "Alice", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := OwnsFolder(tc.folder, tc.declared); got != tc.want {
			t.Errorf("OwnsFolder(%q, %q) = %v, want %v", tc.folder, tc.declared, got, tc.want)
		}
	}
}
