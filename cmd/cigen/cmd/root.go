// Package cmd wires the cigen CLI: an interactive editor by default, plus
// generate, validate, and detect subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cigen",
	Short: "Generate CI pipeline configurations from presets",
	Long: `cigen generates CI pipeline files for GitHub Actions, Gitea Actions,
GitLab CI, CircleCI, and Jenkins from a small set of language presets.

Run without arguments to open the interactive editor: it detects the project
type, lets you toggle preset options in a tree, and shows a live preview of
the generated file (diffed against the one already on disk). Writing from the
editor also saves your choices to cigen.yaml, which the generate command can
replay non-interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cigen %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
