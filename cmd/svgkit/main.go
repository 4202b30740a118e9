package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	svgerrors "github.com/vango-dev/svgkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┬┌─┐┬┌─┬┌┬┐
  └─┐└┐┌┘│ ┬├┴┐│ │
  └─┘ └┘ └─┘┴ ┴┴ ┴
`

// stdout receives status messages. Tests replace it.
var stdout io.Writer = os.Stdout

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	jsonErrors bool
}

func main() {
	flags := &globalFlags{}
	rootCmd := newRootCmd(flags)

	if err := rootCmd.Execute(); err != nil {
		if flags.jsonErrors {
			fmt.Fprintln(os.Stderr, svgerrors.FromError(err, "E400").FormatJSON())
		} else {
			svgerrors.PrintError(err)
		}
		os.Exit(1)
	}
}

func newRootCmd(flags *globalFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svgkit",
		Short: "Build, render and serve SVG documents",
		Long: `svgkit turns declarative scene files into SVG documents.

Scenes are JSON or TOML trees of elements, attributes and text.
svgkit can:

  • Render scenes to standalone .svg files
  • Validate scenes against the SVG element tables
  • Serve a render API over HTTP and WebSocket
  • Live-preview a scene while you edit it
  • Publish rendered documents to S3-compatible storage`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file (default: svgkit.toml or svgkit.json in this or a parent directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonErrors, "json-errors", false, "Print errors as JSON")

	rootCmd.AddCommand(
		renderCmd(flags),
		inspectCmd(),
		validateCmd(flags),
		serveCmd(flags),
		publishCmd(flags),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the svgkit ASCII art banner.
func printBanner() {
	fmt.Fprint(stdout, banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(stdout, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(stdout, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(stdout, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
