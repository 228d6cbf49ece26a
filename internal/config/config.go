// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Storage backends.
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables
// or CLI flags.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	CORSOrigin  string `json:"cors_origin,omitempty"`  // Allowed browser origin

	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // text or json

	HistoryLimit int `json:"history_limit,omitempty"` // Undo depth of editor sessions

	Storage StorageConfig `json:"storage"`
}

// StorageConfig selects and configures the object storage backend used for
// screenshots and exported documents.
type StorageConfig struct {
	Backend   string   `json:"backend,omitempty"`    // local or s3
	LocalPath string   `json:"local_path,omitempty"` // Root directory of the local backend
	S3        S3Config `json:"s3"`
}

// S3Config holds the settings of an S3 compatible endpoint.
type S3Config struct {
	Endpoint         string `json:"endpoint,omitempty"`
	AccessKeyID      string `json:"access_key_id,omitempty"`
	SecretAccessKey  string `json:"secret_access_key,omitempty"`
	Bucket           string `json:"bucket,omitempty"`
	Region           string `json:"region,omitempty"`
	UseSSL           bool   `json:"use_ssl,omitempty"`
	AutoCreateBucket bool   `json:"auto_create_bucket,omitempty"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		Port:         8080,
		CORSOrigin:   "*",
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		HistoryLimit: 100,
		Storage: StorageConfig{
			Backend:   StorageBackendLocal,
			LocalPath: ".data/storage",
		},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with the environment variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.CORSOrigin = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("STORAGE_LOCAL_PATH"); v != "" {
		c.Storage.LocalPath = v
	}

	s3 := &c.Storage.S3
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		s3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY_ID"); v != "" {
		s3.AccessKeyID = v
	}
	if v := os.Getenv("S3_SECRET_ACCESS_KEY"); v != "" {
		s3.SecretAccessKey = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		s3.Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		s3.Region = v
	}
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid S3_USE_SSL: %v", err)
		}
		s3.UseSSL = useSSL
	}

	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: 'history_limit' must be non-negative")
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.LogFormat != "" && c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("config error: 'log_format' must be %q or %q", LogFormatText, LogFormatJSON)
	}

	switch c.Storage.Backend {
	case "", StorageBackendLocal:
		if c.Storage.S3.Endpoint != "" {
			return fmt.Errorf("config error: 'storage.s3' and the %q backend are mutually exclusive", StorageBackendLocal)
		}
	case StorageBackendS3:
		if c.Storage.S3.Endpoint == "" {
			return fmt.Errorf("config error: 'storage.s3.endpoint' is required for the s3 backend")
		}
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("config error: 'storage.s3.bucket' is required for the s3 backend")
		}
	default:
		return fmt.Errorf("config error: unknown storage backend %q", c.Storage.Backend)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}

	if result.Storage.Backend == "" {
		result.Storage.Backend = defaults.Storage.Backend
	}
	if result.Storage.LocalPath == "" {
		result.Storage.LocalPath = defaults.Storage.LocalPath
	}
	s3, d := &result.Storage.S3, defaults.Storage.S3
	if s3.Endpoint == "" {
		s3.Endpoint = d.Endpoint
	}
	if s3.AccessKeyID == "" {
		s3.AccessKeyID = d.AccessKeyID
	}
	if s3.SecretAccessKey == "" {
		s3.SecretAccessKey = d.SecretAccessKey
	}
	if s3.Bucket == "" {
		s3.Bucket = d.Bucket
	}
	if s3.Region == "" {
		s3.Region = d.Region
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}
