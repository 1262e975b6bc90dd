// Package main provides the entry point for the texfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/texfang/cmd/texfang/commands"
	"github.com/Sumatoshi-tech/texfang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "texfang",
		Short: "Texfang - compile Python math functions to LaTeX",
		Long: `Texfang parses Python functions and expressions and renders them
as LaTeX formulas or algorithm pseudocode.

Commands:
  render    Render a Python source file or stdin as LaTeX
  rules     List the built-in function notations and math symbols`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
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
			fmt.Fprintf(os.Stdout, "texfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
