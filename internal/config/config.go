package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vango-dev/svgkit/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "svgkit.json"

	// TOMLFileName is the name of the TOML configuration file.
	// When both exist in a directory the TOML file wins.
	TOMLFileName = "svgkit.toml"

	// DefaultPort is the default render server port.
	DefaultPort = 8080

	// DefaultHost is the default render server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"

	// DefaultMaxBodyBytes caps the size of a scene posted to the server.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultShutdownTimeout bounds graceful server shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultDebounce is the quiet period before a watched scene is re-rendered.
	DefaultDebounce = "100ms"

	// DefaultRegion is the object store region used when none is set.
	DefaultRegion = "us-east-1"
)

// Config represents the complete svgkit configuration.
type Config struct {
	// Server contains render server settings.
	Server ServerConfig `json:"server" toml:"server"`

	// Render contains settings applied to every rendered document.
	Render RenderConfig `json:"render" toml:"render"`

	// Publish contains object store settings.
	Publish PublishConfig `json:"publish" toml:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains render server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" toml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" toml:"port,omitempty"`

	// RateLimit is the sustained number of requests per second.
	// Zero disables rate limiting.
	RateLimit float64 `json:"rateLimit,omitempty" toml:"rate_limit,omitempty"`

	// Burst is the number of requests allowed above RateLimit.
	Burst int `json:"burst,omitempty" toml:"burst,omitempty"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `json:"maxBodyBytes,omitempty" toml:"max_body_bytes,omitempty"`

	// MetricsPath is the route for Prometheus metrics. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty" toml:"metrics_path,omitempty"`

	// Tracing enables OpenTelemetry spans around requests.
	Tracing bool `json:"tracing,omitempty" toml:"tracing,omitempty"`

	// Preview enables the websocket preview endpoint.
	Preview bool `json:"preview,omitempty" toml:"preview,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" toml:"shutdown_timeout,omitempty"`

	// Debounce is the quiet period for the scene watcher (e.g. "100ms").
	Debounce string `json:"debounce,omitempty" toml:"debounce,omitempty"`
}

// RenderConfig contains settings applied to rendered documents.
type RenderConfig struct {
	// Output is the default output file. Empty means stdout.
	Output string `json:"output,omitempty" toml:"output,omitempty"`

	// OmitDeclaration drops the XML declaration from rendered files.
	OmitDeclaration bool `json:"omitDeclaration,omitempty" toml:"omit_declaration,omitempty"`

	// Strict rejects scenes with unknown elements or attributes.
	Strict bool `json:"strict,omitempty" toml:"strict,omitempty"`
}

// PublishConfig contains object store settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty" toml:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" toml:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty" toml:"region,omitempty"`

	// Endpoint overrides the service endpoint (MinIO, localstack).
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty" toml:"path_style,omitempty"`

	// Profile selects a profile from the shared AWS configuration.
	Profile string `json:"profile,omitempty" toml:"profile,omitempty"`

	// CacheControl is set on every uploaded object.
	CacheControl string `json:"cacheControl,omitempty" toml:"cache_control,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			MetricsPath:     DefaultMetricsPath,
			Preview:         true,
			ShutdownTimeout: DefaultShutdownTimeout,
			Debounce:        DefaultDebounce,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for svgkit.toml, then svgkit.json.
func Load(dir string) (*Config, error) {
	if path := filepath.Join(dir, TOMLFileName); fileExists(path) {
		return LoadFile(path)
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
// The format is chosen by extension: .toml is TOML, anything else JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E202").
				WithDetail("No configuration found at " + path).
				WithSuggestion("Run 'svgkit init' or create " + ConfigFileName + " manually").
				Wrap(err)
		}
		return nil, errors.New("E200").Wrap(err)
	}

	cfg := New()
	if isTOML(path) {
		err = decodeTOML(path, data, cfg)
	} else {
		err = decodeJSON(path, data, cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads the configuration from dir or one of its parents,
// falling back to defaults when none exists. Parse errors are returned.
func LoadOrDefault(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}

func decodeJSON(path string, data []byte, cfg *Config) error {
	err := json.Unmarshal(data, cfg)
	if err == nil {
		return nil
	}

	e := errors.New("E200").
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check that the file is valid JSON")

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		e = e.WithOffset(path, data, syntaxErr.Offset)
	case stderrors.As(err, &typeErr):
		e = e.WithOffset(path, data, typeErr.Offset)
	}
	return e
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	if err == nil {
		return nil
	}

	e := errors.New("E200").
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check that the file is valid TOML")

	var decodeErr *toml.DecodeError
	if stderrors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		e = e.WithLocation(path, row, col)
	}
	return e
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in TOML when the
// path ends in .toml and JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E200").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E200").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.RateLimit > 0 && c.Server.Burst == 0 {
		c.Server.Burst = max(1, int(c.Server.RateLimit))
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.Debounce == "" {
		c.Server.Debounce = DefaultDebounce
	}

	// Publish
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	c.Publish.Prefix = strings.Trim(c.Publish.Prefix, "/")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E201").
			WithDetail("server.port must be between 0 and 65535")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("E201").
			WithDetail("server.rateLimit must not be negative")
	}
	if c.Server.Burst < 0 {
		return errors.New("E201").
			WithDetail("server.burst must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("E201").
			WithDetail("server.maxBodyBytes must not be negative")
	}
	if c.Server.MetricsPath != "-" && !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return errors.New("E201").
			WithDetail("server.metricsPath must start with '/' or be '-'")
	}
	for name, value := range map[string]string{
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"server.debounce":        c.Server.Debounce,
	} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return errors.New("E201").
				WithDetail(name + " must be a duration such as \"10s\", got " + strconv.Quote(value))
		}
	}
	return nil
}

// Address returns the listen address for the render server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the render server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// MetricsEnabled reports whether the metrics route is mounted.
func (c *Config) MetricsEnabled() bool {
	return c.Server.MetricsPath != "-"
}

// ShutdownTimeout returns the parsed shutdown timeout, or the default when
// the value is malformed.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, DefaultShutdownTimeout)
}

// Debounce returns the parsed watcher debounce.
func (c *Config) Debounce() time.Duration {
	return parseDuration(c.Server.Debounce, DefaultDebounce)
}

// OutputPath returns the render output path relative to the config
// directory, or "" for stdout.
func (c *Config) OutputPath() string {
	if c.Render.Output == "" || filepath.IsAbs(c.Render.Output) {
		return c.Render.Output
	}
	return filepath.Join(c.Dir(), c.Render.Output)
}

func parseDuration(value, fallback string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	return fileExists(filepath.Join(dir, TOMLFileName)) ||
		fileExists(filepath.Join(dir, ConfigFileName))
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing svgkit.toml or svgkit.json, or an error
// if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E202").
				WithDetail("No configuration found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'svgkit init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadOrDefault(wd)
}
