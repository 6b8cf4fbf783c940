// Package cmd implements the command-line surface: "build" constructs the
// auxiliary graph from a transaction file, "cluster" labels the connected
// components of a previously built graph.
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool
var configPath string

// Execute is the entry point to running the CLI.
func Execute(version string) {
	rootCmd := &cobra.Command{
		Use:          "addrcluster",
		Short:        "Cluster cryptocurrency addresses with the multi-input heuristic",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newClusterCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
