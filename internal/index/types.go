package index

import (
	"fmt"

	"github.com/agentindex-labs/agentindex/internal/registry"
)

// AggregationError reports an invariant broken while folding validated
// developers into the aggregate. It should not occur when per-developer
// validation is correct; it aborts the whole build.
type AggregationError struct {
	Namespace string
	Reason    string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed for %q: %s", e.Namespace, e.Reason)
}

// ProfileDoc is the published projection of a developer profile
// (@{developer}/profile.json).
type ProfileDoc struct {
	Developer  string `json:"developer"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Bio        string `json:"bio,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Website    string `json:"website,omitempty"`
	Contact    string `json:"contact,omitempty"`
	ID         string `json:"_id"`
	AgentCount int    `json:"_agent_count"`
}

// AgentSummary is one row of a developer's agents.json.
type AgentSummary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	ID          string `json:"_id"`
	IndexName   string `json:"_index_name"`
}

// VersionInfo summarizes one listed version inside _available_versions,
// carrying the requirements that vary between versions.
type VersionInfo struct {
	Version           string   `json:"version"`
	IsLatest          bool     `json:"is_latest"`
	ReadinessLevel    string   `json:"readiness_level,omitempty"`
	ModelDependencies []string `json:"model_dependencies,omitempty"`
	RequiredEgress    []string `json:"required_egress,omitempty"`
}

// MetadataDoc merges an agent's identity fields with one version
// specification. The latest projection and every version-pinned projection
// share this shape.
type MetadataDoc struct {
	Name                   string   `json:"name"`
	Developer              string   `json:"developer"`
	Description            string   `json:"description"`
	ContainerImage         string   `json:"container_image"`
	ContainerImageAccess   string   `json:"container_image_access"`
	SourceRepositoryURL    string   `json:"source_repository_url,omitempty"`
	SourceRepositoryAccess string   `json:"source_repository_access"`
	PrimaryFunction        string   `json:"primary_function,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	Capabilities           []string `json:"capabilities,omitempty"`

	Version           string            `json:"version"`
	Context           string            `json:"context,omitempty"`
	ReadinessLevel    string            `json:"readiness_level,omitempty"`
	AutonomyTier      string            `json:"autonomy_tier,omitempty"`
	ModelDependencies []string          `json:"model_dependencies,omitempty"`
	RequiredEgress    []string          `json:"required_egress,omitempty"`
	InputTypes        []string          `json:"input_types,omitempty"`
	OutputTypes       []string          `json:"output_types,omitempty"`
	Facets            []registry.Facet  `json:"facets,omitempty"`
	InputSchema       map[string]any    `json:"input_schema,omitempty"`
	CreatedAt         string            `json:"created_at,omitempty"`
	Metadata          map[string]any    `json:"metadata,omitempty"`

	ContainerImageFull string        `json:"container_image_full,omitempty"`
	ID                 string        `json:"_id"`
	IndexName          string        `json:"_index_name"`
	IsLatest           bool          `json:"_is_latest"`
	AvailableVersions  []VersionInfo `json:"_available_versions"`
}

// IndexEntry is one row of the global index.json, denormalizing developer
// info so consumers can render cards without extra requests.
type IndexEntry struct {
	Developer       string `json:"developer"`
	Name            string `json:"name"`
	Version         string `json:"version"`
	Description     string `json:"description"`
	Context         string `json:"context,omitempty"`
	PrimaryFunction string `json:"primary_function,omitempty"`
	ReadinessLevel  string `json:"readiness_level,omitempty"`

	ContainerImage         string `json:"container_image"`
	ContainerImageAccess   string `json:"container_image_access"`
	SourceRepositoryURL    string `json:"source_repository_url,omitempty"`
	SourceRepositoryAccess string `json:"source_repository_access"`

	DeveloperID        string `json:"developer_id"`
	DeveloperName      string `json:"developer_name"`
	DeveloperAvatarURL string `json:"developer_avatar_url,omitempty"`

	ModelDependencies []string `json:"model_dependencies,omitempty"`
	RequiredEgress    []string `json:"required_egress,omitempty"`
	CreatedAt         string   `json:"created_at,omitempty"`

	ID                string        `json:"_id"`
	IndexName         string        `json:"_index_name"`
	AvailableVersions []VersionInfo `json:"_available_versions"`
}

// DeveloperListEntry is one row of developers.json.
type DeveloperListEntry struct {
	Developer  string `json:"developer"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Bio        string `json:"bio,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Website    string `json:"website,omitempty"`
	ID         string `json:"_id"`
	AgentCount int    `json:"_agent_count"`
}

// AgentsIndexDoc is the top-level index.json document.
type AgentsIndexDoc struct {
	Agents []IndexEntry `json:"agents"`
	Count  int          `json:"count"`
}

// DevelopersDoc is the top-level developers.json document.
type DevelopersDoc struct {
	Developers []DeveloperListEntry `json:"developers"`
	Count      int                  `json:"count"`
}

// VersionDoc is one version-pinned projection of an agent.
type VersionDoc struct {
	Version string
	Doc     MetadataDoc
}

// AgentNode holds every projection of one published agent.
type AgentNode struct {
	Name     string
	Summary  AgentSummary
	Latest   MetadataDoc
	Versions []VersionDoc // every listed version, ascending semver order
}

// DeveloperNode holds one developer's projections. Agents contains published
// agents only; drafts are validated but not projected.
type DeveloperNode struct {
	Namespace string
	Profile   ProfileDoc
	Agents    []*AgentNode // sorted by agent name
}

// Aggregate is the complete in-memory output tree.
type Aggregate struct {
	Developers []*DeveloperNode // sorted by namespace
	Index      AgentsIndexDoc
	List       DevelopersDoc
}
