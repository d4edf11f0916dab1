// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the booking service address used when neither
// the config file nor the --endpoint flag provides one.
const DefaultEndpoint = "http://localhost:8001"

// Duration is a time.Duration that unmarshals from YAML duration
// strings like "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (duration *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*duration = Duration(parsed)
	return nil
}

// Std returns the value as a standard time.Duration.
func (duration Duration) Std() time.Duration {
	return time.Duration(duration)
}

// Config holds everything the paribahan client reads at startup.
type Config struct {
	// Service configures the booking service connection.
	Service ServiceConfig `yaml:"service"`

	// Log configures background logging.
	Log LogConfig `yaml:"log"`
}

// ServiceConfig configures the connection to the booking service.
type ServiceConfig struct {
	// Endpoint is the base URL of the booking service
	// (scheme and host, e.g. http://localhost:8001).
	Endpoint string `yaml:"endpoint"`

	// RequestTimeout bounds each HTTP request to the service.
	// Zero means no client-side timeout.
	RequestTimeout Duration `yaml:"request_timeout"`
}

// LogConfig configures background logging. The TUI owns the terminal,
// so log records go to a file, never stderr.
type LogConfig struct {
	// Output is the path of a JSON log file. Empty disables
	// background logging.
	Output string `yaml:"output"`
}

// Default returns the default configuration. These defaults make the
// client work against a local service with no config file at all;
// the file only needs to exist when something differs.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint:       DefaultEndpoint,
			RequestTimeout: Duration(30 * time.Second),
		},
	}
}

// Load loads configuration from the file named by the
// PARIBAHAN_CONFIG environment variable. When the variable is unset,
// the defaults are returned; when it is set, the file must exist and
// parse. There is no home-directory discovery or search path.
func Load() (*Config, error) {
	configPath := os.Getenv("PARIBAHAN_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults. Environment variables do not override config
// values.
func LoadFile(path string) (*Config, error) {
	configuration := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, configuration); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return configuration, nil
}

// Validate checks the configuration for values that would fail later
// in confusing ways, primarily a malformed endpoint URL.
func (configuration *Config) Validate() error {
	endpoint := configuration.Service.Endpoint
	if endpoint == "" {
		return fmt.Errorf("service.endpoint must not be empty")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("service.endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("service.endpoint %q: scheme must be http or https", endpoint)
	}
	if configuration.Service.RequestTimeout < 0 {
		return fmt.Errorf("service.request_timeout must not be negative")
	}
	return nil
}
