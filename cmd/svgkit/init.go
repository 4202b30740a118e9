package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/config"
	svgerrors "github.com/vango-dev/svgkit/internal/errors"
)

// exampleScene is written by init next to the configuration.
const exampleScene = `{
  "tag": "svg",
  "attrs": {"width": 120, "height": 40, "viewBox": "0 0 120 40"},
  "children": [
    {"tag": "rect", "attrs": {"width": 120, "height": 40, "rx": 6, "fill": "#2b6cb0"}},
    {
      "tag": "text",
      "attrs": {"x": 60, "y": 25, "text-anchor": "middle", "fill": "#fff"},
      "style": {"font-family": "sans-serif", "font-size": 14},
      "text": "svgkit"
    }
  ]
}
`

func initCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a configuration file and an example scene",
		Long: `Create svgkit.toml (or svgkit.json with --format=json) with the
default settings, plus an example scene.json.

Examples:
  svgkit init
  svgkit init diagrams --format=json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, format, force)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Configuration format: toml or json")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(dir, format string, force bool) error {
	var name string
	switch format {
	case "toml":
		name = config.TOMLFileName
	case "json":
		name = config.ConfigFileName
	default:
		return svgerrors.New("E201").WithDetail("--format must be toml or json, got " + format)
	}

	if config.Exists(dir) && !force {
		return svgerrors.Newf(svgerrors.CategoryCLI, "configuration already exists in %s", dir).
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return svgerrors.New("E300").Wrap(err)
	}

	path := filepath.Join(dir, name)
	if err := config.New().SaveTo(path); err != nil {
		return svgerrors.New("E300").WithDetail("Could not write " + path).Wrap(err)
	}
	success("Created %s", path)

	scenePath := filepath.Join(dir, "scene.json")
	if _, err := os.Stat(scenePath); err == nil && !force {
		warn("%s exists, leaving it alone", scenePath)
	} else {
		if err := writeOutput(scenePath, exampleScene[:len(exampleScene)-1]); err != nil {
			return err
		}
		success("Created %s", scenePath)
	}

	info("Next: svgkit render %s", scenePath)
	return nil
}
