package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	svgerrors "github.com/vango-dev/svgkit/internal/errors"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		output        string
		strict        bool
		noDeclaration bool
	)

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a scene to SVG",
		Long: `Render a JSON or TOML scene file to an SVG document.

The document is written to stdout unless --output (or render.output in
the configuration) names a file.

Examples:
  svgkit render badge.json
  svgkit render chart.toml -o chart.svg
  svgkit render logo.json --strict --no-declaration`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.OutputPath()
			}

			doc, err := buildScene(args[0], strict || cfg.Render.Strict)
			if err != nil {
				return err
			}

			out := doc.File()
			if noDeclaration || cfg.Render.OmitDeclaration {
				out = doc.Render()
			}

			if output == "" || output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			if err := writeOutput(output, out); err != nil {
				return err
			}
			success("Rendered %s → %s (%s)", args[0], output, formatBytes(int64(len(out))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout, or render.output)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject unknown elements and attributes")
	cmd.Flags().BoolVar(&noDeclaration, "no-declaration", false, "Omit the XML declaration")

	return cmd
}

// writeOutput writes a rendered document, creating parent directories.
func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return svgerrors.New("E300").WithDetail("Could not create " + filepath.Dir(path)).Wrap(err)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return svgerrors.New("E300").WithDetail("Could not write " + path).Wrap(err)
	}
	return nil
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
