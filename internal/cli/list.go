package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentindex-labs/agentindex/internal/printer"
	"github.com/agentindex-labs/agentindex/internal/registry"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List developers and agents in the registry source tree",
	Long: `List every developer namespace and agent directory found in the registry,
with its latest version and validation status. Listing does not require the
tree to be valid; invalid entries are marked.`,
	RunE: runList,
}

// listEntry represents one agent directory for display.
type listEntry struct {
	Developer string `json:"developer"`
	Agent     string `json:"agent,omitempty"`
	Latest    string `json:"latest,omitempty"`
	Listed    int    `json:"listed"`
	Status    string `json:"status"`
}

func runList(cmd *cobra.Command, args []string) error {
	results, err := registry.Run(registry.Options{Root: registryRoot})
	if err != nil {
		return printer.Error(err.Error())
	}

	var entries []listEntry
	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = fmt.Sprintf("invalid (%d violations)", len(r.Violations))
		}
		if len(r.Set.Agents) == 0 {
			entries = append(entries, listEntry{Developer: r.Namespace, Status: status})
			continue
		}
		for _, agent := range r.Set.Agents {
			entry := listEntry{
				Developer: r.Namespace,
				Agent:     agent.Name,
				Status:    status,
			}
			if agent.Versions != nil {
				entry.Latest = agent.Versions.LatestVersion
				entry.Listed = len(agent.Versions.ListedVersions)
			}
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No developers found.")
		return nil
	}

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVELOPER\tAGENT\tLATEST\tLISTED\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Developer, e.Agent, e.Latest, e.Listed, e.Status)
	}
	return w.Flush()
}
