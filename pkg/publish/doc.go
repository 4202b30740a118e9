// Package publish uploads rendered SVG documents to S3-compatible object
// storage.
//
// A Store wraps anything that implements ObjectAPI; *s3.Client from
// aws-sdk-go-v2 satisfies it, and tests use a fake:
//
//	client, err := publish.NewS3Client(ctx, publish.ClientConfig{Region: "eu-west-1"})
//	store, err := publish.NewStore(client, publish.Config{Bucket: "assets", Prefix: "badges"})
//	obj, err := store.Put(ctx, "build-status", doc)
//
// Keys are "<prefix>/<name>.svg". An empty name gets a random UUID.
package publish
