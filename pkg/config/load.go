package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ahm16/progcheck/pkg/integrity"
	"github.com/ahm16/progcheck/pkg/telemetry"
)

// EnvPrefix prefixes every environment variable read into the configuration.
const EnvPrefix = "PROGCHECK_"

// Loader builds configurations from a file, the environment and defaults.
type Loader struct {
	fs        afero.Fs
	validator *validator.Validate
}

// NewLoader creates a loader reading configuration files from fs.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{
		fs:        fs,
		validator: validator.New(),
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// not empty) and then with PROGCHECK_* environment variables. The result is
// validated.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := afero.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and schema overrides.
func (l *Loader) Validate(cfg *Config) error {
	if err := l.validator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.BuildSchema(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// DataPath returns the directory holding the datasets.
func (c *Config) DataPath() string {
	return resolve(c.SiteDir, c.DataDir)
}

// HistoryPath returns the history database file.
func (c *Config) HistoryPath() string {
	return resolve(c.SiteDir, c.History.Path)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// BuildSchema returns the built-in schema with the configured overrides
// applied. Overrides are applied in key order.
func (c *Config) BuildSchema() (*integrity.Schema, error) {
	s := integrity.DefaultSchema()

	paths := make([]string, 0, len(c.Schema))
	for path := range c.Schema {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		t, err := integrity.ParseTypeSpec(c.Schema[path])
		if err != nil {
			return nil, fmt.Errorf("schema override %s: %w", path, err)
		}
		if err := s.Override(path, t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Telemetry converts the configuration into telemetry settings.
func (c *Config) Telemetry(version string) *telemetry.Config {
	tc := telemetry.DefaultConfig()
	tc.ServiceVersion = version

	tc.Logging = telemetry.LoggingConfig{
		Level:        c.Logging.Level,
		Format:       c.Logging.Format,
		Output:       c.Logging.Output,
		EnableCaller: c.Logging.Caller,
	}

	tc.Tracing.Enabled = c.Tracing.Enabled
	tc.Tracing.Exporter = c.Tracing.Exporter
	tc.Tracing.Endpoint = c.Tracing.Endpoint
	tc.Tracing.Insecure = c.Tracing.Insecure

	tc.Metrics = telemetry.MetricsConfig{
		Enabled:       c.Metrics.Enabled,
		ListenAddress: c.Metrics.ListenAddress,
		Path:          c.Metrics.Path,
		Namespace:     c.Metrics.Namespace,
	}
	return tc
}
