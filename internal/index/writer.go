package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Output file names mirroring the consumption API.
const (
	IndexFile      = "index.json"
	DevelopersFile = "developers.json"
	ProfileOut     = "profile.json"
	AgentsOut      = "agents.json"
	MetadataOut    = "metadata.json"
)

// Write serializes the aggregate to distDir:
//
//	index.json
//	developers.json
//	@{developer}/profile.json
//	@{developer}/agents.json
//	@{developer}/{agent}/metadata.json
//	@{developer}/{agent}/{version}/metadata.json
//
// The tree is built in a temporary sibling directory and swapped in whole, so
// a failed run never leaves a partial publish tree and prior output is
// overwritten wholesale.
func Write(agg *Aggregate, distDir string) error {
	parent := filepath.Dir(distDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating output parent %s: %w", parent, err)
	}

	tmp, err := os.MkdirTemp(parent, ".dist-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := writeTree(agg, tmp); err != nil {
		return err
	}

	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("removing previous output %s: %w", distDir, err)
	}
	if err := os.Rename(tmp, distDir); err != nil {
		return fmt.Errorf("publishing output to %s: %w", distDir, err)
	}
	return nil
}

// writeTree emits every document of the aggregate under dir.
func writeTree(agg *Aggregate, dir string) error {
	if err := writeJSON(filepath.Join(dir, IndexFile), agg.Index); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, DevelopersFile), agg.List); err != nil {
		return err
	}

	for _, dev := range agg.Developers {
		base := filepath.Join(dir, "@"+dev.Namespace)

		if err := writeJSON(filepath.Join(base, ProfileOut), dev.Profile); err != nil {
			return err
		}

		summaries := make([]AgentSummary, 0, len(dev.Agents))
		for _, agent := range dev.Agents {
			summaries = append(summaries, agent.Summary)
		}
		if err := writeJSON(filepath.Join(base, AgentsOut), summaries); err != nil {
			return err
		}

		for _, agent := range dev.Agents {
			agentDir := filepath.Join(base, agent.Name)
			if err := writeJSON(filepath.Join(agentDir, MetadataOut), agent.Latest); err != nil {
				return err
			}
			for _, vd := range agent.Versions {
				if err := writeJSON(filepath.Join(agentDir, vd.Version, MetadataOut), vd.Doc); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeJSON marshals v with stable key ordering and a trailing newline.
// encoding/json sorts map keys, so the free-form metadata bags serialize
// deterministically too.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
