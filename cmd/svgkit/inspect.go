package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/pkg/scene"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scene>",
		Short: "Print the element tree of a scene",
		Long: `Print the element tree of a scene with its attributes.

Examples:
  svgkit inspect badge.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := readScene(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), scene.Tree(root))
			return nil
		},
	}
}
