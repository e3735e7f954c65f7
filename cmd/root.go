// Package cmd provides the command-line interface for the rollup tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Rollup collects weekly status reports from GitHub issues",
	Long: `Rollup is a CLI tool that scans a GitHub repository's issues for structured
weekly status comments and publishes a rollup discussion summarizing them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
