// Package common provides shared utilities for buildup
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// LocalOrigin is where the planning API listens during development.
	LocalOrigin = "http://localhost:6100"
	// ProductionOrigin is the hosted planning API.
	ProductionOrigin = "http://140.82.22.55:80"
)

// Config holds all configuration for buildup
type Config struct {
	Environment string            `toml:"environment" yaml:"environment"`
	Client      ClientConfig      `toml:"client" yaml:"client"`
	Credentials CredentialsConfig `toml:"credentials" yaml:"credentials"`
	Stub        StubConfig        `toml:"stub" yaml:"stub"`
	Logging     LoggingConfig     `toml:"logging" yaml:"logging"`
}

// ClientConfig holds API client configuration
type ClientConfig struct {
	BaseURL   string `toml:"base_url" yaml:"base_url"` // Overrides the environment origin when set
	Shape     string `toml:"shape" yaml:"shape"`       // legacy, json or uid
	UID       string `toml:"uid" yaml:"uid"`
	Timeout   string `toml:"timeout" yaml:"timeout"` // empty means no timeout
	RateLimit int    `toml:"rate_limit" yaml:"rate_limit"`
}

// GetTimeout parses and returns the timeout duration. Zero disables it.
func (c *ClientConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// CredentialsConfig holds the API key pair handed to the client at construction.
type CredentialsConfig struct {
	Key    string `toml:"key" yaml:"key"`
	Secret string `toml:"secret" yaml:"secret"`
}

// StubConfig holds the listen address of the local stub server
type StubConfig struct {
	Host string `toml:"host" yaml:"host"`
	Port int    `toml:"port" yaml:"port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Client: ClientConfig{
			Shape: "json",
		},
		Stub: StubConfig{
			Host: "localhost",
			Port: 6100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := unmarshalConfig(path, data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return toml.Unmarshal(data, config)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BUILDUP_ENV"); env != "" {
		config.Environment = env
	}

	if v := os.Getenv("BUILDUP_BASE_URL"); v != "" {
		config.Client.BaseURL = v
	}
	if v := os.Getenv("BUILDUP_SHAPE"); v != "" {
		config.Client.Shape = v
	}
	if v := os.Getenv("BUILDUP_UID"); v != "" {
		config.Client.UID = v
	}
	if v := os.Getenv("BUILDUP_TIMEOUT"); v != "" {
		config.Client.Timeout = v
	}

	if v := os.Getenv("BUILDUP_API_KEY"); v != "" {
		config.Credentials.Key = v
	}
	if v := os.Getenv("BUILDUP_API_SECRET"); v != "" {
		config.Credentials.Secret = v
	}

	if host := os.Getenv("BUILDUP_STUB_HOST"); host != "" {
		config.Stub.Host = host
	}
	if port := os.Getenv("BUILDUP_STUB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Stub.Port = p
		}
	}

	if level := os.Getenv("BUILDUP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// OriginForEnvironment maps an environment name to the planning API origin.
func OriginForEnvironment(env string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "local", "development", "dev", "test":
		return LocalOrigin, nil
	case "production", "prod":
		return ProductionOrigin, nil
	default:
		return "", fmt.Errorf("unknown environment %q (want local|production)", env)
	}
}

// ResolveBaseURL returns the explicit client base URL, or the origin of the
// configured environment.
func (c *Config) ResolveBaseURL() (string, error) {
	if c.Client.BaseURL != "" {
		return strings.TrimRight(c.Client.BaseURL, "/"), nil
	}
	return OriginForEnvironment(c.Environment)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the names of required settings that are unset.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Credentials.Key == "" {
		missing = append(missing, "credentials.key")
	}
	if c.Credentials.Secret == "" {
		missing = append(missing, "credentials.secret")
	}
	return missing
}
