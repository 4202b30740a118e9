package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/svgkit/pkg/svg"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func newTestStore(t *testing.T, client ObjectAPI, cfg Config) *Store {
	t.Helper()
	s, err := NewStore(client, cfg)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestNewStore_RequiresBucket(t *testing.T) {
	_, err := NewStore(&fakeS3{}, Config{})
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestStore_Key(t *testing.T) {
	s := newTestStore(t, &fakeS3{}, Config{Bucket: "b", Prefix: "/badges/"})
	tests := []struct {
		name     string
		expected string
	}{
		{"status", "badges/status.svg"},
		{"status.svg", "badges/status.svg"},
		{"/nested/logo/", "badges/nested/logo.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Key(tt.name))
		})
	}

	noPrefix := newTestStore(t, &fakeS3{}, Config{Bucket: "b"})
	assert.Equal(t, "logo.svg", noPrefix.Key("logo"))
}

func TestStore_KeyGeneratesUUID(t *testing.T) {
	s := newTestStore(t, &fakeS3{}, Config{Bucket: "b", Prefix: "p"})
	key := s.Key("")
	require.True(t, strings.HasPrefix(key, "p/"))
	require.True(t, strings.HasSuffix(key, ".svg"))
	_, err := uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(key, "p/"), ".svg"))
	assert.NoError(t, err)
	assert.NotEqual(t, key, s.Key(""))
}

func TestStore_Put(t *testing.T) {
	fake := &fakeS3{}
	s := newTestStore(t, fake, Config{Bucket: "assets", Prefix: "img", CacheControl: "max-age=60"})
	doc := svg.Create(svg.Attrs{svg.Attribute("width", svg.Num(10))})

	obj, err := s.Put(context.Background(), "dot", doc)
	require.NoError(t, err)
	assert.Equal(t, Object{Bucket: "assets", Key: "img/dot.svg", Size: len(doc.Render()), ETag: "abc123"}, obj)
	assert.Equal(t, "s3://assets/img/dot.svg", obj.URL())

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "assets", aws.ToString(in.Bucket))
	assert.Equal(t, "img/dot.svg", aws.ToString(in.Key))
	assert.Equal(t, ContentType, aws.ToString(in.ContentType))
	assert.Equal(t, "max-age=60", aws.ToString(in.CacheControl))
	assert.Equal(t, int64(len(doc.Render())), aws.ToInt64(in.ContentLength))
	assert.Equal(t, "2026-01-02T03:04:05Z", in.Metadata["publish-time"])
	assert.Equal(t, doc.Render(), fake.bodies[0])
}

func TestStore_PutWithDeclaration(t *testing.T) {
	fake := &fakeS3{}
	s := newTestStore(t, fake, Config{Bucket: "assets", XMLDeclaration: true})
	doc := svg.Create(nil)

	_, err := s.Put(context.Background(), "x", doc)
	require.NoError(t, err)
	assert.Equal(t, doc.File(), fake.bodies[0])
	assert.Nil(t, fake.inputs[0].CacheControl)
}

func TestStore_PutError(t *testing.T) {
	boom := errors.New("access denied")
	s := newTestStore(t, &fakeS3{err: boom}, Config{Bucket: "assets"})

	_, err := s.PutString(context.Background(), "x", "<svg></svg>")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "x.svg")
}

// isolateAWS points the SDK at empty shared files and clears the
// environment it reads.
func isolateAWS(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	for _, k := range []string{"AWS_PROFILE", "AWS_REGION", "AWS_DEFAULT_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN"} {
		t.Setenv(k, "")
	}
}

func TestNewS3Client(t *testing.T) {
	isolateAWS(t)

	client, err := NewS3Client(context.Background(), ClientConfig{Endpoint: "http://localhost:9000", PathStyle: true})
	require.NoError(t, err)
	opts := client.Options()
	assert.Equal(t, DefaultRegion, opts.Region)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))

	var _ ObjectAPI = client
}

func TestNewS3Client_Region(t *testing.T) {
	isolateAWS(t)
	t.Setenv("AWS_REGION", "eu-central-1")

	client, err := NewS3Client(context.Background(), ClientConfig{})
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", client.Options().Region)

	client, err = NewS3Client(context.Background(), ClientConfig{Region: "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", client.Options().Region)
}

func TestNewS3Client_EnvironmentCredentials(t *testing.T) {
	isolateAWS(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "token")

	client, err := NewS3Client(context.Background(), ClientConfig{})
	require.NoError(t, err)
	creds, err := client.Options().Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "token", creds.SessionToken)
	assert.NoError(t, CheckCredentials(context.Background(), client))
}

func TestNewS3Client_SharedProfile(t *testing.T) {
	isolateAWS(t)
	dir := t.TempDir()
	credsFile := filepath.Join(dir, "credentials")
	require.NoError(t, os.WriteFile(credsFile, []byte("[ci]\naws_access_key_id = CIKEY\naws_secret_access_key = cisecret\n"), 0600))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credsFile)

	client, err := NewS3Client(context.Background(), ClientConfig{Profile: "ci"})
	require.NoError(t, err)
	creds, err := client.Options().Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CIKEY", creds.AccessKeyID)

	_, err = NewS3Client(context.Background(), ClientConfig{Profile: "missing"})
	assert.Error(t, err)
}

func TestCheckCredentials(t *testing.T) {
	isolateAWS(t)
	denied := errors.New("no keys")

	client, err := NewS3Client(context.Background(), ClientConfig{
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{}, denied
		}),
	})
	require.NoError(t, err)

	err = CheckCredentials(context.Background(), client)
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Contains(t, err.Error(), "no keys")

	client, err = NewS3Client(context.Background(), ClientConfig{
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "secret", Source: "test"}, nil
		}),
	})
	require.NoError(t, err)
	assert.NoError(t, CheckCredentials(context.Background(), client))
}
