// Package main provides the entry point for the ghrs CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Victor-Haefner/github-repo-stats/cmd/ghrs/commands"
	"github.com/Victor-Haefner/github-repo-stats/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ghrs",
		Short: "github-repo-stats - repository traffic report generator",
		Long: `ghrs reconciles accumulated GitHub traffic snapshots (views, clones
and top referrers) into coherent time series and renders a report.

Commands:
  report    Generate a traffic report from a directory of snapshot CSVs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "ghrs %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
