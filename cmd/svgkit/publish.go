package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	svgerrors "github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		name   string
		bucket string
		prefix string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "publish <scene>",
		Short: "Render a scene and upload it to S3",
		Long: `Render a scene and upload the document to an S3-compatible bucket.

Bucket, prefix, region, profile and endpoint come from the publish
section of the configuration. Credentials follow the standard AWS chain:
environment variables, shared config and credentials files, SSO and
instance metadata.

The object key is <prefix>/<name>.svg, where name defaults to the
scene file name.

Examples:
  svgkit publish badge.json
  svgkit publish badge.json --name=status --bucket=assets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				cfg.Publish.Prefix = prefix
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			doc, err := buildScene(args[0], strict || cfg.Render.Strict)
			if err != nil {
				return err
			}

			if cfg.Publish.Bucket == "" {
				return svgerrors.New("E302").WithSuggestion("Add a [publish] section to svgkit.toml or pass --bucket")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			client, err := publish.NewS3Client(ctx, publish.ClientConfig{
				Region:    cfg.Publish.Region,
				Profile:   cfg.Publish.Profile,
				Endpoint:  cfg.Publish.Endpoint,
				PathStyle: cfg.Publish.PathStyle,
			})
			if err != nil {
				return svgerrors.New("E301").Wrap(err).
					WithSuggestion("Check publish.profile and the shared AWS configuration")
			}
			if err := publish.CheckCredentials(ctx, client); err != nil {
				return svgerrors.New("E301").Wrap(err).
					WithSuggestion("Export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, or set publish.profile")
			}

			store, err := publish.NewStore(client, publish.Config{
				Bucket:         cfg.Publish.Bucket,
				Prefix:         cfg.Publish.Prefix,
				CacheControl:   cfg.Publish.CacheControl,
				XMLDeclaration: !cfg.Render.OmitDeclaration,
			})
			if err != nil {
				return err
			}

			obj, err := store.Put(ctx, name, doc)
			if err != nil {
				return svgerrors.New("E301").Wrap(err)
			}
			success("Published %s (%s)", obj.URL(), formatBytes(int64(obj.Size)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Object name (default: scene file name)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (default publish.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default publish.prefix)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject unknown elements and attributes")

	return cmd
}
