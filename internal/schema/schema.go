package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Name identifies one of the registry document schemas.
type Name string

const (
	Developer     Name = "developer"
	AgentIdentity Name = "agent-identity"
	Versions      Name = "versions"
	AgentVersion  Name = "agent-version"
)

// AllNames lists every schema shipped with the binary.
var AllNames = []Name{Developer, AgentIdentity, Versions, AgentVersion}

var (
	compileOnce sync.Once
	compiled    map[Name]*jsonschema.Schema
	compileErr  error
)

// compileAll compiles the embedded schemas exactly once.
func compileAll() {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, name := range AllNames {
			file := fmt.Sprintf("schemas/%s.schema.json", name)
			raw, err := schemaFS.ReadFile(file)
			if err != nil {
				compileErr = fmt.Errorf("reading embedded schema %s: %w", file, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", file, err)
				return
			}
			if err := c.AddResource(string(name)+".schema.json", doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", file, err)
				return
			}
		}

		compiled = make(map[Name]*jsonschema.Schema, len(AllNames))
		for _, name := range AllNames {
			s, err := c.Compile(string(name) + ".schema.json")
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
}

// get returns the compiled schema for name.
func get(name Name) (*jsonschema.Schema, error) {
	compileAll()
	if compileErr != nil {
		return nil, compileErr
	}
	s, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return s, nil
}
