package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentindex-labs/agentindex/internal/index"
	"github.com/agentindex-labs/agentindex/internal/printer"
	"github.com/agentindex-labs/agentindex/internal/registry"
	"github.com/agentindex-labs/agentindex/internal/searchdb"
	"github.com/spf13/cobra"
)

var (
	searchDeveloper string
	searchTag       string
	searchReadiness string
	searchJSON      bool
)

func init() {
	searchCmd.Flags().StringVar(&searchDeveloper, "developer", "", "Filter by developer namespace")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Filter by tag")
	searchCmd.Flags().StringVar(&searchReadiness, "readiness", "", "Filter by readiness level (experimental, alpha, beta, production)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search published agents in the registry",
	Long: `Search the published agents of the registry. The query matches agent names
and descriptions (case-insensitive substring); flags add column filters.
Developers that fail validation are skipped with a warning, matching what a
build would publish.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	results, err := registry.Run(registry.Options{Root: registryRoot})
	if err != nil {
		return printer.Error(err.Error())
	}

	// Search covers what a build would publish: clean developers only.
	var sets []*registry.DeveloperSet
	for _, r := range results {
		if r.OK() {
			sets = append(sets, r.Set)
			continue
		}
		printer.Warning("skipping %s (%d violations)", r.Namespace, len(r.Violations))
	}

	agg, err := index.Build(sets)
	if err != nil {
		return printer.Error(fmt.Sprintf("aggregating registry: %v", err))
	}

	db, err := searchdb.Open(":memory:")
	if err != nil {
		return fmt.Errorf("opening search index: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Load(ctx, agg); err != nil {
		return fmt.Errorf("loading search index: %w", err)
	}

	rows, err := db.Search(ctx, searchdb.Filter{
		Query:     query,
		Developer: searchDeveloper,
		Tag:       searchTag,
		Readiness: searchReadiness,
	})
	if err != nil {
		return fmt.Errorf("searching agents: %w", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No agents found.")
		return nil
	}

	if searchJSON {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tVERSION\tREADINESS\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintf(w, "@%s/%s\t%s\t%s\t%s\n", r.Developer, r.Name, r.Version, r.ReadinessLevel, truncate(r.Description, 60))
	}
	return w.Flush()
}

// truncate shortens s for single-line table display. Counts runes, not
// bytes, so multibyte descriptions are never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
