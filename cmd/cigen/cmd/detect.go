package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cigen/internal/detect"
	"cigen/internal/platform"
	"cigen/internal/preset"
)

var detectDir string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the project type and show matching presets",
	Long: `Inspects the project directory's build manifests (Cargo.toml,
pyproject.toml, go.mod, Dockerfile) and reports the detected project type,
any CI files already present, and which presets apply.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := detect.Project(detectDir)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		cyan := color.New(color.FgCyan)
		dim := color.New(color.Faint)

		bold.Printf("Project: %s\n", res.Type)
		if res.LanguageVersion != "" {
			fmt.Printf("  version: %s\n", res.LanguageVersion)
		}
		for _, key := range res.MetadataKeys() {
			dim.Printf("  %s: %s\n", key, res.Metadata[key])
		}

		fmt.Println()
		bold.Println("Existing CI files:")
		found := false
		for _, p := range platform.All() {
			path := p.OutputPath()
			if _, err := os.Stat(filepath.Join(detectDir, path)); err == nil {
				cyan.Printf("  %-16s %s\n", p.Name(), path)
				found = true
			}
		}
		if !found {
			dim.Println("  none")
		}

		fmt.Println()
		bold.Println("Presets:")
		var other []preset.Preset
		for _, p := range preset.NewRegistry().All() {
			if p.MatchesProject(res.Type, detectDir) {
				color.New(color.FgGreen).Printf("  ✓ %s", p.Name())
				dim.Printf("  %s\n", p.Description())
			} else {
				other = append(other, p)
			}
		}
		for _, p := range other {
			dim.Printf("    %s\n", p.Name())
		}

		fmt.Println()
		dim.Println("Run 'cigen' to configure interactively, or 'cigen generate' to replay cigen.yaml.")
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVarP(&detectDir, "dir", "d", ".", "project directory")
	rootCmd.AddCommand(detectCmd)
}
