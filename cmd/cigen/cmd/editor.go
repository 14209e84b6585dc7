package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cigen/internal/editor"
	"cigen/internal/platform"
)

var (
	editorDir      string
	editorPlatform string
)

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Open the interactive configuration editor",
	Long: `Opens the tree editor: presets on the left, a live preview of the generated
CI file on the right. When the target platform already has a CI file in the
project, the preview shows a diff against it.

Press W to write the previewed file and save your choices to cigen.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor()
	},
}

func runEditor() error {
	written, err := editor.Run(editorDir, platform.Parse(editorPlatform))
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func init() {
	editorCmd.Flags().StringVarP(&editorDir, "dir", "d", ".", "project directory")
	editorCmd.Flags().StringVarP(&editorPlatform, "platform", "p", "github", "initial target platform")
	rootCmd.AddCommand(editorCmd)
}
