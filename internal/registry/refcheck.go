package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// validNamespace matches GitHub username rules: alphanumeric with interior
// hyphens, no leading or trailing hyphen.
var validNamespace = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// OwnsFolder reports whether a record's declared namespace matches the folder
// it lives in. Folder ownership proofing (matching a submitter's account to a
// folder) happens outside this tool, which exposes the same rule so both
// sides agree on it.
func OwnsFolder(folderName, declared string) bool {
	return folderName != "" && folderName == declared
}

// CheckReferences cross-checks one developer's parsed, schema-valid document
// set against the folder layout it was loaded from. Documents that failed
// parsing or schema validation are nil in the set and are skipped here; they
// already carry violations from the loader.
func CheckReferences(set *DeveloperSet) []Violation {
	var violations []Violation
	add := func(kind Kind, file, message string) {
		violations = append(violations, Violation{Kind: kind, File: file, Message: message})
	}

	if !validNamespace.MatchString(set.Namespace) {
		add(KindReference, set.Dir, fmt.Sprintf("invalid namespace folder name %q (must match %s)", set.Namespace, validNamespace.String()))
	}

	if set.Profile != nil && !OwnsFolder(set.Namespace, set.Profile.Developer) {
		add(KindReference, set.Dir+"/"+ProfileFile,
			fmt.Sprintf("developer field %q does not match folder name %q", set.Profile.Developer, set.Namespace))
	}

	// Agent names must be unique within the developer even on
	// case-insensitive filesystems.
	seenAgents := make(map[string]string)
	for _, agent := range set.Agents {
		lower := strings.ToLower(agent.Name)
		if prev, ok := seenAgents[lower]; ok {
			add(KindReference, agent.Dir, fmt.Sprintf("agent name collides with %q (names differing only by case are not allowed)", prev))
		}
		seenAgents[lower] = agent.Name

		violations = append(violations, checkAgent(set.Namespace, agent)...)
	}

	return violations
}

// checkAgent verifies one agent's identity fields against the folder path and
// resolves every version pointer against the version specification files.
func checkAgent(namespace string, agent *AgentSet) []Violation {
	var violations []Violation
	add := func(file, message string) {
		violations = append(violations, Violation{Kind: KindReference, File: file, Message: message})
	}

	if agent.Identity != nil {
		if !OwnsFolder(namespace, agent.Identity.Developer) {
			add(agent.Dir+"/"+IdentityFile,
				fmt.Sprintf("developer field %q does not match folder %q", agent.Identity.Developer, namespace))
		}
		if agent.Identity.Name != agent.Name {
			add(agent.Dir+"/"+IdentityFile,
				fmt.Sprintf("name field %q does not match directory %q", agent.Identity.Name, agent.Name))
		}
	}

	// Build the version lookup, rejecting filenames that collide when
	// compared case-insensitively.
	specs := make(map[string]SpecFile, len(agent.Specs))
	seenStems := make(map[string]string)
	for _, sf := range agent.Specs {
		lower := strings.ToLower(sf.Stem)
		if prev, ok := seenStems[lower]; ok {
			add(sf.File, fmt.Sprintf("version filename collides with %s.yaml (names differing only by case are not allowed)", prev))
			continue
		}
		seenStems[lower] = sf.Stem
		specs[sf.Stem] = sf

		if _, err := semver.StrictNewVersion(sf.Stem); err != nil {
			add(sf.File, fmt.Sprintf("filename %q is not a valid semantic version: %v", sf.Stem, err))
		}
		if sf.Spec != nil && sf.Spec.Version != sf.Stem {
			add(sf.File, fmt.Sprintf("version field %q does not match filename (expected %q)", sf.Spec.Version, sf.Stem))
		}
	}

	if agent.Versions == nil {
		return violations
	}

	versionsFile := agent.Dir + "/" + VersionsFile
	latest := agent.Versions.LatestVersion
	listed := agent.Versions.ListedVersions

	// Publication policy: latest_version and listed_versions are set
	// together. An agent with neither is a draft and stays out of the index.
	if latest == "" && len(listed) > 0 {
		add(versionsFile, "listed_versions is non-empty but latest_version is unset")
	}
	if latest != "" {
		if len(listed) == 0 {
			add(versionsFile, fmt.Sprintf("latest_version %q is set but listed_versions is empty", latest))
		} else if !contains(listed, latest) {
			add(versionsFile, fmt.Sprintf("latest_version %q is not in listed_versions", latest))
		}
		if _, ok := specs[latest]; !ok {
			add(versionsFile, fmt.Sprintf("latest_version %q has no version file (%s.yaml not found)", latest, latest))
		}
	}
	for _, v := range listed {
		if _, ok := specs[v]; !ok {
			add(versionsFile, fmt.Sprintf("listed_versions contains %q but %s.yaml not found", v, v))
		}
	}

	return violations
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
