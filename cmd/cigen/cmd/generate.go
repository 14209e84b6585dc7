package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cigen/internal/document"
	"cigen/internal/generator"
	"cigen/internal/platform"
)

var (
	generatePlatform string
	generateDir      string
	generateForce    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [config]",
	Short: "Generate CI files from a cigen.yaml document",
	Long: `Reads the declarative document (cigen.yaml by default) and writes one CI
file per preset choice for the chosen platform. With several presets, GitHub
and Gitea get one workflow file each; single-file platforms get the preset id
suffixed onto the file name.

Existing files are never overwritten unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := document.DefaultPath
		if len(args) == 1 {
			configPath = args[0]
		}

		target := platform.Parse(generatePlatform)
		written, err := generator.Generate(generateDir, configPath, target, generateForce)
		if err != nil {
			if errors.Is(err, generator.ErrFileConflict) {
				return err
			}
			return fmt.Errorf("generate: %w", err)
		}

		green := color.New(color.FgGreen)
		for _, path := range written {
			green.Printf("  wrote %s\n", path)
		}
		fmt.Printf("generated %d file(s) for %s\n", len(written), target.Name())
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generatePlatform, "platform", "p", "github", "target platform (github, gitea, gitlab, circleci, jenkins)")
	generateCmd.Flags().StringVarP(&generateDir, "dir", "d", ".", "output directory")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite existing files")
	rootCmd.AddCommand(generateCmd)
}
