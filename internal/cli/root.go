// Package cli wires the rideshared command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// configDir is set by the --config-dir flag.
var configDir string

var rootCmd = &cobra.Command{
	Use:   "rideshared",
	Short: "rideshared is a modular ride-sharing API server",
	Long: `rideshared serves a ride-sharing HTTP API built as a modular monolith:
each domain module keeps shared read queries, pure decision logic,
private mutations and an event layer that emits on the in-process bus.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing rideshare.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
