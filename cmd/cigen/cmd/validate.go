package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cigen/internal/document"
	"cigen/internal/generator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a cigen.yaml document for errors",
	Long: `Parses the declarative document and checks its structure: every entry must
name exactly one known preset, unknown fields and unknown enum values are
rejected, and the document must not be empty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := document.DefaultPath
		if len(args) == 1 {
			configPath = args[0]
		}

		doc, err := generator.Validate(configPath)
		if err != nil {
			return fmt.Errorf("%s: %w", configPath, err)
		}

		color.New(color.FgGreen).Printf("%s is valid\n", configPath)
		for i := range doc.Presets {
			id, err := doc.Presets[i].PresetID()
			if err != nil {
				return err
			}
			fmt.Printf("  preset %d: %s\n", i+1, id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
