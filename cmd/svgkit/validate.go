package main

import (
	"fmt"

	"github.com/spf13/cobra"

	svgerrors "github.com/vango-dev/svgkit/internal/errors"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene>...",
		Short: "Check scenes against the SVG element tables",
		Long: `Build each scene in strict mode and report unknown elements,
attributes that are not permitted on their element, values outside an
attribute's vocabulary, children their parent does not permit, and
content that an element would drop.

Examples:
  svgkit validate badge.json
  svgkit validate scenes/*.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := buildScene(path, true); err != nil {
					failed++
					if se, ok := err.(*svgerrors.SvgkitError); ok && se.Code == "E110" {
						errorMsg("%s", path)
						for _, p := range se.Problems {
							fmt.Fprintf(cmd.ErrOrStderr(), "    %s  %s\n", p.Path, p.Message)
						}
						continue
					}
					errorMsg("%s: %v", path, err)
					continue
				}
				success("%s", path)
			}
			if failed > 0 {
				return svgerrors.New("E110").
					WithDetail(fmt.Sprintf("%d of %d scenes failed validation", failed, len(args)))
			}
			return nil
		},
	}
}
