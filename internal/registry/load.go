package registry

import (
	"os"
	"path/filepath"

	"github.com/agentindex-labs/agentindex/internal/schema"
)

// LoadDeveloper parses and schema-validates every document in one developer
// folder under root/developers/namespace. It returns the parsed set together
// with all parse and schema violations found. Cross-file referential checks
// run separately via CheckReferences.
func LoadDeveloper(root, namespace string) (*DeveloperSet, []Violation) {
	dir := filepath.Join(DevelopersDir, namespace)
	set := &DeveloperSet{Namespace: namespace, Dir: filepath.ToSlash(dir)}

	violations := checkFolder(root, dir)

	profileRel := relPath(root, filepath.Join(root, dir, ProfileFile))
	if _, err := os.Stat(filepath.Join(root, dir, ProfileFile)); err != nil {
		violations = append(violations, Violation{
			Kind:    KindReference,
			File:    profileRel,
			Message: "missing profile.yaml",
		})
	} else {
		var profile DeveloperProfile
		ok, vs := loadDocument(filepath.Join(root, dir, ProfileFile), profileRel, schema.Developer, &profile)
		violations = append(violations, vs...)
		if ok {
			set.Profile = &profile
		}
	}

	// A developer may publish a profile before any agents; a missing agents
	// directory is not a violation.
	agentsPath := filepath.Join(root, dir, AgentsDir)
	entries, err := os.ReadDir(agentsPath)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			agent, vs := loadAgent(root, dir, entry.Name())
			set.Agents = append(set.Agents, agent)
			violations = append(violations, vs...)
		}
	}

	return set, violations
}

// loadAgent parses the identity, version set, and every version specification
// of one agent directory. Missing required files are reported here; pointer
// and equality checks run in CheckReferences.
func loadAgent(root, devDir, name string) (*AgentSet, []Violation) {
	dir := filepath.Join(devDir, AgentsDir, name)
	agent := &AgentSet{Name: name, Dir: filepath.ToSlash(dir)}

	var violations []Violation

	identityAbs := filepath.Join(root, dir, IdentityFile)
	identityRel := relPath(root, identityAbs)
	if _, err := os.Stat(identityAbs); err != nil {
		violations = append(violations, Violation{
			Kind:    KindReference,
			File:    identityRel,
			Message: "missing agent.yaml",
		})
	} else {
		var identity AgentIdentity
		ok, vs := loadDocument(identityAbs, identityRel, schema.AgentIdentity, &identity)
		violations = append(violations, vs...)
		if ok {
			agent.Identity = &identity
		}
	}

	versionsAbs := filepath.Join(root, dir, VersionsFile)
	versionsRel := relPath(root, versionsAbs)
	if _, err := os.Stat(versionsAbs); err != nil {
		violations = append(violations, Violation{
			Kind:    KindReference,
			File:    versionsRel,
			Message: "missing versions.yaml",
		})
	} else {
		var versions VersionSet
		ok, vs := loadDocument(versionsAbs, versionsRel, schema.Versions, &versions)
		violations = append(violations, vs...)
		if ok {
			agent.Versions = &versions
		}
	}

	// Every remaining .yaml file is a version specification named by its
	// version string. os.ReadDir returns entries sorted by filename, which
	// keeps Specs ordering deterministic.
	entries, err := os.ReadDir(filepath.Join(root, dir))
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() || entry.Name() == IdentityFile || entry.Name() == VersionsFile {
				continue
			}
			if filepath.Ext(entry.Name()) != YAMLExt {
				continue // already flagged by checkFolder
			}

			specAbs := filepath.Join(root, dir, entry.Name())
			specRel := relPath(root, specAbs)
			sf := SpecFile{
				File: specRel,
				Stem: entry.Name()[:len(entry.Name())-len(YAMLExt)],
			}

			var spec VersionSpec
			ok, vs := loadDocument(specAbs, specRel, schema.AgentVersion, &spec)
			violations = append(violations, vs...)
			if ok {
				sf.Spec = &spec
			}
			agent.Specs = append(agent.Specs, sf)
		}
	}

	if len(agent.Specs) == 0 {
		violations = append(violations, Violation{
			Kind:    KindReference,
			File:    agent.Dir,
			Message: "no version specification files found (e.g. 1.0.0.yaml)",
		})
	}

	return agent, violations
}

// loadDocument reads, schema-validates, and decodes a single document.
// It reports every schema issue for the file, not just the first.
func loadDocument[T any](absPath, rel string, name schema.Name, out *T) (bool, []Violation) {
	data, err := readDocument(absPath)
	if err != nil {
		return false, []Violation{{Kind: KindParse, File: rel, Message: err.Error()}}
	}

	result, err := schema.Validate(name, data)
	if err != nil {
		return false, []Violation{{Kind: KindParse, File: rel, Message: err.Error()}}
	}
	if !result.Valid {
		violations := make([]Violation, 0, len(result.Issues))
		for _, issue := range result.Issues {
			violations = append(violations, Violation{
				Kind:    KindSchema,
				File:    rel,
				Path:    issue.Path,
				Message: issue.Message,
			})
		}
		return false, violations
	}

	if err := decodeDocument(data, out); err != nil {
		return false, []Violation{{Kind: KindParse, File: rel, Message: err.Error()}}
	}
	return true, nil
}
