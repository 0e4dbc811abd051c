// Package cmd implements the CLI commands for infiniti-drive.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "infiniti-drive",
	Short: "Serve the Infiniti Drive bike catalogue",
	Long: "An API-first service for a used-motorcycle showroom. It loads listings from the " +
		"content management system, serves catalogue search, filtering, and sorting, and " +
		"forwards contact form enquiries to the dealership inbox.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(openapiCommand())
}

// Root returns the root command, for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
