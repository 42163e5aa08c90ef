package cli

import (
	"fmt"

	"github.com/agentindex-labs/agentindex/internal/config"
	"github.com/agentindex-labs/agentindex/internal/index"
	"github.com/agentindex-labs/agentindex/internal/printer"
	"github.com/agentindex-labs/agentindex/internal/registry"
	"github.com/spf13/cobra"
)

var (
	buildDist    string
	buildWorkers int
)

func init() {
	buildCmd.Flags().StringVar(&buildDist, "dist", "", "Output directory (default from config)")
	buildCmd.Flags().IntVar(&buildWorkers, "workers", 0, "Validation worker count (default: one per CPU)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [namespace...]",
	Short: "Validate the registry and emit the output tree",
	Long: `Validate the registry (or only the named namespaces) and, when every
developer in scope is clean, compile the flattened output tree: global index,
developer list, and per-developer, per-agent, per-version projections. The
publish step is all-or-nothing; nothing is written if validation fails.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	results, err := registry.Run(registry.Options{
		Root:    registryRoot,
		Scope:   args,
		Workers: buildWorkers,
	})
	if err != nil {
		return printer.Error(err.Error())
	}

	// Publishing requires the whole scope to be clean.
	if err := reportResults(results); err != nil {
		return err
	}

	sets := make([]*registry.DeveloperSet, 0, len(results))
	for _, r := range results {
		sets = append(sets, r.Set)
	}

	agg, err := index.Build(sets)
	if err != nil {
		return printer.Error(fmt.Sprintf("build aborted: %v", err))
	}

	dist := buildDist
	if dist == "" {
		dist = config.Get(config.KeyDistDir)
	}
	printer.Step("publishing %d agents to %s", agg.Index.Count, dist)
	if err := index.Write(agg, dist); err != nil {
		return printer.Error(fmt.Sprintf("writing output tree: %v", err))
	}

	printer.Success("published %d agents from %d developers to %s", agg.Index.Count, agg.List.Count, dist)
	return nil
}
