package index

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentindex-labs/agentindex/internal/registry"
)

// Build folds validated developer sets into the deterministic aggregate.
// Input order does not matter: developers are sorted by namespace and agents
// by name before projection. The only cross-developer invariant, namespace
// uniqueness, is asserted here and aborts the whole build when broken.
func Build(sets []*registry.DeveloperSet) (*Aggregate, error) {
	sorted := make([]*registry.DeveloperSet, len(sets))
	copy(sorted, sets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Namespace < sorted[j].Namespace
	})

	seen := make(map[string]string, len(sorted))
	agg := &Aggregate{
		Index: AgentsIndexDoc{Agents: []IndexEntry{}},
		List:  DevelopersDoc{Developers: []DeveloperListEntry{}},
	}

	for _, set := range sorted {
		lower := strings.ToLower(set.Namespace)
		if prev, ok := seen[lower]; ok {
			return nil, &AggregationError{
				Namespace: set.Namespace,
				Reason:    "namespace collides with developer " + prev,
			}
		}
		seen[lower] = set.Namespace

		node, err := buildDeveloper(set)
		if err != nil {
			return nil, err
		}
		agg.Developers = append(agg.Developers, node)

		agg.List.Developers = append(agg.List.Developers, DeveloperListEntry{
			Developer:  node.Profile.Developer,
			Name:       node.Profile.Name,
			Type:       node.Profile.Type,
			Bio:        node.Profile.Bio,
			AvatarURL:  node.Profile.AvatarURL,
			Website:    node.Profile.Website,
			ID:         node.Profile.ID,
			AgentCount: node.Profile.AgentCount,
		})
		for _, agent := range node.Agents {
			agg.Index.Agents = append(agg.Index.Agents, indexEntry(node.Profile, agent.Latest))
		}
	}

	agg.Index.Count = len(agg.Index.Agents)
	agg.List.Count = len(agg.List.Developers)
	return agg, nil
}

// buildDeveloper projects one developer set. The set must have passed
// validation; holes in it are internal-consistency failures.
func buildDeveloper(set *registry.DeveloperSet) (*DeveloperNode, error) {
	if set.Profile == nil {
		return nil, &AggregationError{Namespace: set.Namespace, Reason: "developer has no validated profile"}
	}

	node := &DeveloperNode{
		Namespace: set.Namespace,
		Profile: ProfileDoc{
			Developer: set.Profile.Developer,
			Name:      set.Profile.Name,
			Type:      set.Profile.Type,
			Bio:       set.Profile.Bio,
			AvatarURL: set.Profile.AvatarURL,
			Website:   set.Profile.Website,
			Contact:   set.Profile.Contact,
			ID:        set.Namespace,
		},
	}

	agents := make([]*registry.AgentSet, len(set.Agents))
	copy(agents, set.Agents)
	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })

	for _, agent := range agents {
		if agent.Versions == nil || agent.Identity == nil {
			return nil, &AggregationError{
				Namespace: set.Namespace,
				Reason:    "agent " + agent.Name + " has unvalidated documents",
			}
		}
		// Drafts (no listed versions) are validated but never published.
		if len(agent.Versions.ListedVersions) == 0 {
			continue
		}

		agentNode, err := buildAgent(set.Namespace, agent)
		if err != nil {
			return nil, err
		}
		node.Agents = append(node.Agents, agentNode)
	}

	node.Profile.AgentCount = len(node.Agents)
	return node, nil
}

// buildAgent projects one published agent: the merged latest metadata plus a
// version-pinned projection for every listed version.
func buildAgent(namespace string, agent *registry.AgentSet) (*AgentNode, error) {
	specs := make(map[string]*registry.VersionSpec, len(agent.Specs))
	for _, sf := range agent.Specs {
		specs[sf.Stem] = sf.Spec
	}

	listed := sortVersions(agent.Versions.ListedVersions)
	latest := agent.Versions.LatestVersion

	available := make([]VersionInfo, 0, len(listed))
	for _, v := range listed {
		spec := specs[v]
		if spec == nil {
			return nil, &AggregationError{
				Namespace: namespace,
				Reason:    "agent " + agent.Name + " lists version " + v + " with no specification",
			}
		}
		available = append(available, VersionInfo{
			Version:           v,
			IsLatest:          v == latest,
			ReadinessLevel:    spec.ReadinessLevel,
			ModelDependencies: spec.ModelDependencies,
			RequiredEgress:    spec.RequiredEgress,
		})
	}

	latestSpec := specs[latest]
	if latestSpec == nil {
		return nil, &AggregationError{
			Namespace: namespace,
			Reason:    "agent " + agent.Name + " latest version " + latest + " has no specification",
		}
	}

	node := &AgentNode{
		Name:   agent.Name,
		Latest: mergeDoc(namespace, agent.Identity, latestSpec, latest, available),
		Summary: AgentSummary{
			Name:        agent.Name,
			Version:     latest,
			Description: agent.Identity.Description,
			ID:          namespace + "/" + agent.Name,
			IndexName:   "@" + namespace + "/" + agent.Name,
		},
	}

	for _, v := range listed {
		node.Versions = append(node.Versions, VersionDoc{
			Version: v,
			Doc:     mergeDoc(namespace, agent.Identity, specs[v], latest, available),
		})
	}

	return node, nil
}

// mergeDoc combines identity fields with one version specification.
func mergeDoc(namespace string, identity *registry.AgentIdentity, spec *registry.VersionSpec, latest string, available []VersionInfo) MetadataDoc {
	doc := MetadataDoc{
		Name:                   identity.Name,
		Developer:              namespace,
		Description:            identity.Description,
		ContainerImage:         identity.ContainerImage,
		ContainerImageAccess:   accessOrDefault(identity.ContainerImageAccess),
		SourceRepositoryURL:    identity.SourceRepositoryURL,
		SourceRepositoryAccess: accessOrDefault(identity.SourceRepositoryAccess),
		PrimaryFunction:        identity.PrimaryFunction,
		Tags:                   identity.Tags,
		Capabilities:           identity.Capabilities,

		Version:           spec.Version,
		Context:           spec.Context,
		ReadinessLevel:    spec.ReadinessLevel,
		AutonomyTier:      spec.AutonomyTier,
		ModelDependencies: spec.ModelDependencies,
		RequiredEgress:    spec.RequiredEgress,
		InputTypes:        spec.InputTypes,
		OutputTypes:       spec.OutputTypes,
		Facets:            spec.Facets,
		InputSchema:       spec.InputSchema,
		CreatedAt:         spec.CreatedAt,
		Metadata:          spec.Metadata,

		ID:                namespace + "/" + identity.Name,
		IndexName:         "@" + namespace + "/" + identity.Name,
		IsLatest:          spec.Version == latest,
		AvailableVersions: available,
	}

	// The container tag is derived from the version, never written by hand.
	if identity.ContainerImage != "" && spec.Version != "" {
		doc.ContainerImageFull = identity.ContainerImage + ":" + spec.Version
	}
	return doc
}

// indexEntry flattens a latest projection into a global index row.
func indexEntry(profile ProfileDoc, latest MetadataDoc) IndexEntry {
	return IndexEntry{
		Developer:       latest.Developer,
		Name:            latest.Name,
		Version:         latest.Version,
		Description:     latest.Description,
		Context:         latest.Context,
		PrimaryFunction: latest.PrimaryFunction,
		ReadinessLevel:  latest.ReadinessLevel,

		ContainerImage:         latest.ContainerImage,
		ContainerImageAccess:   latest.ContainerImageAccess,
		SourceRepositoryURL:    latest.SourceRepositoryURL,
		SourceRepositoryAccess: latest.SourceRepositoryAccess,

		DeveloperID:        profile.ID,
		DeveloperName:      profile.Name,
		DeveloperAvatarURL: profile.AvatarURL,

		ModelDependencies: latest.ModelDependencies,
		RequiredEgress:    latest.RequiredEgress,
		CreatedAt:         latest.CreatedAt,

		ID:                latest.ID,
		IndexName:         latest.IndexName,
		AvailableVersions: latest.AvailableVersions,
	}
}

// accessOrDefault applies the conservative default for access fields.
func accessOrDefault(access string) string {
	if access == "" {
		return "private"
	}
	return access
}

// sortVersions returns the versions in ascending semantic-version order.
// Referential validation guarantees the strings parse; anything that does
// not is ordered lexically at the end so the result stays deterministic.
func sortVersions(versions []string) []string {
	sorted := make([]string, len(versions))
	copy(sorted, versions)
	sort.Slice(sorted, func(i, j int) bool {
		vi, erri := semver.StrictNewVersion(sorted[i])
		vj, errj := semver.StrictNewVersion(sorted[j])
		if erri != nil || errj != nil {
			if (erri == nil) != (errj == nil) {
				return erri == nil
			}
			return sorted[i] < sorted[j]
		}
		return vi.LessThan(vj)
	})
	return sorted
}
