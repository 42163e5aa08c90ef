package registry

import "fmt"

// Directory and file name constants for the registry layout convention.
const (
	DevelopersDir = "developers"
	AgentsDir     = "agents"
	ProfileFile   = "profile.yaml"
	IdentityFile  = "agent.yaml"
	VersionsFile  = "versions.yaml"
	YAMLExt       = ".yaml"
)

// Kind classifies a violation by the pipeline stage that found it.
type Kind string

const (
	// KindParse marks malformed document syntax or a file that breaks the
	// size/complexity limits. Fatal to that file only.
	KindParse Kind = "parse"
	// KindSchema marks a single-file schema violation (missing field, wrong
	// type, pattern or enum mismatch).
	KindSchema Kind = "schema"
	// KindReference marks a cross-file inconsistency that no single-file
	// schema can express (dangling version pointers, identity mismatches).
	KindReference Kind = "reference"
)

// Violation is a single problem found in a developer's documents. All
// violations for a developer are collected and reported together.
type Violation struct {
	Kind    Kind
	File    string // path relative to the registry root
	Path    string // field path within the document, if any
	Message string
}

func (v Violation) String() string {
	loc := v.File
	if v.Path != "" {
		loc += "#" + v.Path
	}
	return fmt.Sprintf("[%s] %s: %s", v.Kind, loc, v.Message)
}

// DeveloperProfile is the parsed profile.yaml document.
type DeveloperProfile struct {
	Developer string `yaml:"developer" json:"developer"`
	Name      string `yaml:"name" json:"name"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	Bio       string `yaml:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL string `yaml:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Website   string `yaml:"website,omitempty" json:"website,omitempty"`
	Contact   string `yaml:"contact,omitempty" json:"contact,omitempty"`
}

// AgentIdentity is the parsed agent.yaml document. Identity never changes
// between versions; behavioral fields live in VersionSpec.
type AgentIdentity struct {
	Developer              string   `yaml:"developer" json:"developer"`
	Name                   string   `yaml:"name" json:"name"`
	Description            string   `yaml:"description" json:"description"`
	ContainerImage         string   `yaml:"container_image" json:"container_image"`
	ContainerImageAccess   string   `yaml:"container_image_access,omitempty" json:"container_image_access,omitempty"`
	SourceRepositoryURL    string   `yaml:"source_repository_url,omitempty" json:"source_repository_url,omitempty"`
	SourceRepositoryAccess string   `yaml:"source_repository_access,omitempty" json:"source_repository_access,omitempty"`
	PrimaryFunction        string   `yaml:"primary_function,omitempty" json:"primary_function,omitempty"`
	Tags                   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Capabilities           []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
}

// VersionSet is the parsed versions.yaml document. listed_versions controls
// index visibility; latest_version selects the merged "latest" projection.
type VersionSet struct {
	LatestVersion  string   `yaml:"latest_version,omitempty" json:"latest_version,omitempty"`
	ListedVersions []string `yaml:"listed_versions" json:"listed_versions"`
}

// Facet is a single name/value classification entry on a version.
type Facet struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// VersionSpec is a parsed {version}.yaml document. The closed set of typed
// fields is extended by the free-form Metadata bag for forward compatibility.
type VersionSpec struct {
	Version           string         `yaml:"version" json:"version"`
	Context           string         `yaml:"context,omitempty" json:"context,omitempty"`
	ReadinessLevel    string         `yaml:"readiness_level,omitempty" json:"readiness_level,omitempty"`
	AutonomyTier      string         `yaml:"autonomy_tier,omitempty" json:"autonomy_tier,omitempty"`
	ModelDependencies []string       `yaml:"model_dependencies,omitempty" json:"model_dependencies,omitempty"`
	RequiredEgress    []string       `yaml:"required_egress,omitempty" json:"required_egress,omitempty"`
	InputTypes        []string       `yaml:"input_types,omitempty" json:"input_types,omitempty"`
	OutputTypes       []string       `yaml:"output_types,omitempty" json:"output_types,omitempty"`
	Facets            []Facet        `yaml:"facets,omitempty" json:"facets,omitempty"`
	InputSchema       map[string]any `yaml:"input_schema,omitempty" json:"input_schema,omitempty"`
	CreatedAt         string         `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	Metadata          map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// SpecFile pairs a version specification with its source file.
type SpecFile struct {
	File string // path relative to the registry root
	Stem string // filename minus the .yaml extension
	Spec *VersionSpec
}

// AgentSet holds every parsed document of one agent directory. Fields are nil
// when the corresponding file is missing or failed parsing; the loader records
// a violation in that case and referential checks skip the nil pieces.
type AgentSet struct {
	Name     string // directory name
	Dir      string // path relative to the registry root
	Identity *AgentIdentity
	Versions *VersionSet
	Specs    []SpecFile // sorted by filename
}

// DeveloperSet holds every parsed document of one developer folder.
type DeveloperSet struct {
	Namespace string
	Dir       string // path relative to the registry root
	Profile   *DeveloperProfile
	Agents    []*AgentSet // sorted by name
}

// DeveloperResult pairs one developer's parsed documents with every violation
// found across parsing, schema validation, and referential checks.
type DeveloperResult struct {
	Namespace  string
	Set        *DeveloperSet
	Violations []Violation
}

// OK reports whether the developer's documents passed every check.
func (r DeveloperResult) OK() bool { return len(r.Violations) == 0 }
