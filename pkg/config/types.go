package config

import "time"

// Config is the progcheck configuration.
type Config struct {
	// SiteDir is the root of the site whose data is checked.
	SiteDir string `yaml:"site_dir" env:"SITEDIR" validate:"required"`

	// DataDir holds the dataset files. Relative paths are resolved against
	// SiteDir.
	DataDir string `yaml:"data_dir" env:"DATA_DIR" validate:"required"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`

	// Tracing configures OpenTelemetry spans around checks.
	Tracing TracingConfig `yaml:"tracing" envPrefix:"TRACING_"`

	// History configures the run history store.
	History HistoryConfig `yaml:"history" envPrefix:"HISTORY_"`

	// Watch configures watch mode.
	Watch WatchConfig `yaml:"watch" envPrefix:"WATCH_"`

	// Schema retypes fields of the built-in schema, e.g.
	// "person.email": "text".
	Schema map[string]string `yaml:"schema"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" env:"LEVEL" validate:"required,oneof=trace debug info warn error"`

	// Format is the log format (console, json).
	Format string `yaml:"format" env:"FORMAT" validate:"required,oneof=console json"`

	// Output is stderr, stdout or a file path.
	Output string `yaml:"output" env:"OUTPUT"`

	// Caller adds file:line information to log entries.
	Caller bool `yaml:"caller" env:"CALLER"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// ListenAddress serves metrics in watch mode when set, e.g. ":9090".
	ListenAddress string `yaml:"listen_address" env:"LISTEN_ADDRESS"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `yaml:"path" env:"PATH" validate:"omitempty,startswith=/"`

	// Namespace prefixes all metric names.
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// TracingConfig configures tracing.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// Exporter is the span exporter (otlp, stdout, none).
	Exporter string `yaml:"exporter" env:"EXPORTER" validate:"required,oneof=otlp stdout none"`

	// Endpoint is the OTLP collector endpoint.
	Endpoint string `yaml:"endpoint" env:"ENDPOINT" validate:"required_if=Enabled true Exporter otlp"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" env:"INSECURE"`
}

// HistoryConfig configures the run history store.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded.
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// Path is the SQLite database file. Relative paths are resolved against
	// the site directory.
	Path string `yaml:"path" env:"PATH" validate:"required_if=Enabled true"`

	// Keep is the number of most recent runs retained. Zero keeps all.
	Keep int `yaml:"keep" env:"KEEP" validate:"gte=0"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is how long the data directory must stay quiet before a
	// change triggers a new check.
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SiteDir: ".",
		DataDir: "_data",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "progcheck",
		},
		Tracing: TracingConfig{
			Exporter: "none",
			Insecure: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".progcheck/history.db",
			Keep:    500,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}
