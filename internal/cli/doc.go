// Package cli defines the Cobra command tree for the agentindex CLI. Each
// file in this package registers one top-level command (validate, build,
// list, search, etc.) with the root command. Command implementations delegate
// to internal packages for the pipeline logic and only handle flag parsing
// and I/O formatting.
package cli
