package cli

import (
	"github.com/agentindex-labs/agentindex/internal/branding"
	"github.com/agentindex-labs/agentindex/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// registryRoot is shared by every command that reads the source tree.
var registryRoot string

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` validates the decentralized agent registry source tree
(developer profiles, agent identities, version sets, per-version
specifications) and compiles it into the flattened index tree served
statically to registry consumers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if registryRoot == "" {
			registryRoot = config.Get(config.KeyRegistryRoot)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryRoot, "registry", "", "Registry root containing developers/ (default from config)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
