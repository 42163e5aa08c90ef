package cli

import (
	"fmt"

	"github.com/agentindex-labs/agentindex/internal/printer"
	"github.com/agentindex-labs/agentindex/internal/registry"
	"github.com/spf13/cobra"
)

var validateWorkers int

func init() {
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "Validation worker count (default: one per CPU)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [namespace...]",
	Short: "Validate registry documents and cross-file references",
	Long: `Validate every developer folder (or only the named namespaces) against the
document schemas and the cross-file referential rules: folder/identity
matches, version pointer resolution, filename/version equality, and
uniqueness. All violations are reported together, one diagnostic line each.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	results, err := registry.Run(registry.Options{
		Root:    registryRoot,
		Scope:   args,
		Workers: validateWorkers,
	})
	if err != nil {
		return printer.Error(err.Error())
	}
	return reportResults(results)
}

// reportResults prints one line per developer plus one diagnostic line per
// violation. The returned error is non-nil when any developer failed, which
// drives the process exit status.
func reportResults(results []registry.DeveloperResult) error {
	failed := 0
	violations := 0
	for _, r := range results {
		if r.OK() {
			printer.Success("%s (%d agents)", r.Namespace, len(r.Set.Agents))
			continue
		}
		failed++
		violations += len(r.Violations)
		printer.Fail("%s", r.Namespace)
		for _, v := range r.Violations {
			printer.Diagnostic(v.String())
		}
	}

	if failed > 0 {
		return printer.Error(fmt.Sprintf("validation failed: %d violations across %d of %d developers", violations, failed, len(results)))
	}
	return nil
}
