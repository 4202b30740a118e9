package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vango-dev/svgkit/pkg/middleware"
	"github.com/vango-dev/svgkit/pkg/svg"
)

// ContentType is the media type of every published object.
const ContentType = "image/svg+xml"

// ErrNoBucket is returned by NewStore when no bucket is configured.
var ErrNoBucket = errors.New("publish: no bucket configured")

// ObjectAPI is the subset of the S3 client used by Store.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures a Store.
type Config struct {
	Bucket string
	Prefix string

	// CacheControl is sent as the Cache-Control header of each object.
	CacheControl string

	// XMLDeclaration uploads Document.File() instead of Document.Render().
	XMLDeclaration bool

	Logger  *slog.Logger
	Metrics *middleware.Metrics
}

// Object describes an uploaded document.
type Object struct {
	Bucket string
	Key    string
	Size   int
	ETag   string
}

// URL returns the s3:// location of the object.
func (o Object) URL() string {
	return "s3://" + o.Bucket + "/" + o.Key
}

// Store uploads documents to a single bucket.
type Store struct {
	client ObjectAPI
	config Config
	now    func() time.Time
}

// NewStore creates a Store. It returns ErrNoBucket if cfg.Bucket is empty.
func NewStore(client ObjectAPI, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{client: client, config: cfg, now: time.Now}, nil
}

// Key returns the object key for name.
func (s *Store) Key(name string) string {
	name = strings.Trim(name, "/")
	if name == "" {
		name = uuid.New().String()
	}
	if path.Ext(name) != ".svg" {
		name += ".svg"
	}
	if s.config.Prefix == "" {
		return name
	}
	return s.config.Prefix + "/" + name
}

// Put renders doc and uploads it under name.
func (s *Store) Put(ctx context.Context, name string, doc *svg.Document) (Object, error) {
	body := doc.Render()
	if s.config.XMLDeclaration {
		body = doc.File()
	}
	return s.PutString(ctx, name, body)
}

// PutString uploads already rendered markup under name.
func (s *Store) PutString(ctx context.Context, name, body string) (Object, error) {
	key := s.Key(name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(ContentType),
		Metadata: map[string]string{
			"generator":    "svgkit",
			"publish-time": s.now().UTC().Format(time.RFC3339),
		},
	}
	if s.config.CacheControl != "" {
		input.CacheControl = aws.String(s.config.CacheControl)
	}

	start := time.Now()
	out, err := s.client.PutObject(ctx, input)
	s.config.Metrics.RecordPublish(err)
	if err != nil {
		s.config.Logger.Error("publish failed", "bucket", s.config.Bucket, "key", key, "error", err)
		return Object{}, fmt.Errorf("publish %s: %w", key, err)
	}

	obj := Object{Bucket: s.config.Bucket, Key: key, Size: len(body)}
	if out != nil && out.ETag != nil {
		obj.ETag = strings.Trim(*out.ETag, `"`)
	}
	s.config.Logger.Info("published",
		"bucket", obj.Bucket,
		"key", obj.Key,
		"bytes", obj.Size,
		"duration", time.Since(start),
	)
	return obj, nil
}
