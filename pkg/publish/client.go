package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is used when neither ClientConfig.Region nor the AWS
// configuration names a region.
const DefaultRegion = "us-east-1"

// ErrNoCredentials is returned by CheckCredentials when the credential chain
// finds nothing.
var ErrNoCredentials = errors.New("publish: no AWS credentials found")

// ClientConfig selects the S3 endpoint. Credentials, region and profile
// otherwise come from the standard AWS chain: environment, shared config and
// credentials files, SSO and instance metadata.
type ClientConfig struct {
	Region string

	// Profile selects a named profile from the shared configuration.
	Profile string

	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of bucket.endpoint.
	PathStyle bool

	// Credentials replaces the default credential chain.
	Credentials aws.CredentialsProvider
}

// NewS3Client loads the AWS configuration and builds an S3 client.
func NewS3Client(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Credentials != nil {
		opts = append(opts, config.WithCredentialsProvider(cfg.Credentials))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("publish: load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = DefaultRegion
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	}), nil
}

// CheckCredentials resolves the client's credentials once, so a missing
// key is reported before any upload starts.
func CheckCredentials(ctx context.Context, client *s3.Client) error {
	provider := client.Options().Credentials
	if provider == nil {
		return ErrNoCredentials
	}
	if _, err := provider.Retrieve(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return nil
}
