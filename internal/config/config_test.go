package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"database_url": "postgres://localhost/resumes",
		"port": 9090,
		"log_format": "json",
		"storage": {
			"backend": "s3",
			"s3": {"endpoint": "localhost:9000", "bucket": "resumes", "use_ssl": true}
		}
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, StorageBackendS3, cfg.Storage.Backend)
	assert.Equal(t, "localhost:9000", cfg.Storage.S3.Endpoint)
	assert.Equal(t, "resumes", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.UseSSL)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/resumes")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_BUCKET", "uploads")
	t.Setenv("S3_USE_SSL", "true")

	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "postgres://env/resumes", cfg.DatabaseURL)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StorageBackendS3, cfg.Storage.Backend)
	assert.Equal(t, "minio:9000", cfg.Storage.S3.Endpoint)
	assert.Equal(t, "uploads", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.UseSSL)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		cfg := Config{}
		assert.ErrorContains(t, cfg.ApplyEnv(), "invalid PORT")
	})
	t.Run("use ssl", func(t *testing.T) {
		t.Setenv("S3_USE_SSL", "maybe")
		cfg := Config{}
		assert.ErrorContains(t, cfg.ApplyEnv(), "invalid S3_USE_SSL")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero value", mutate: func(c *Config) { *c = Config{} }},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "'port'"},
		{name: "negative history", mutate: func(c *Config) { c.HistoryLimit = -1 }, wantErr: "'history_limit'"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "unknown log level"},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "'log_format'"},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "ftp" }, wantErr: "unknown storage backend"},
		{name: "s3 without endpoint", mutate: func(c *Config) {
			c.Storage.Backend = StorageBackendS3
			c.Storage.S3.Bucket = "b"
		}, wantErr: "'storage.s3.endpoint'"},
		{name: "s3 without bucket", mutate: func(c *Config) {
			c.Storage.Backend = StorageBackendS3
			c.Storage.S3.Endpoint = "localhost:9000"
		}, wantErr: "'storage.s3.bucket'"},
		{name: "s3 settings on local backend", mutate: func(c *Config) {
			c.Storage.S3.Endpoint = "localhost:9000"
		}, wantErr: "mutually"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://file/resumes",
		Storage:     StorageConfig{Backend: StorageBackendS3, S3: S3Config{Bucket: "mine"}},
	}
	defaults := Defaults()
	defaults.Storage.S3.Region = "us-east-1"

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres://file/resumes", result.DatabaseURL, "should keep existing value")
	assert.Equal(t, 8080, result.Port, "should use default")
	assert.Equal(t, "info", result.LogLevel)
	assert.Equal(t, 100, result.HistoryLimit)
	assert.Equal(t, StorageBackendS3, result.Storage.Backend)
	assert.Equal(t, ".data/storage", result.Storage.LocalPath)
	assert.Equal(t, "mine", result.Storage.S3.Bucket)
	assert.Equal(t, "us-east-1", result.Storage.S3.Region)

	assert.Equal(t, 0, cfg.Port, "receiver should not be modified")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Port: 9000}
	result := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, 9000, result.Port)
	assert.Empty(t, result.DatabaseURL)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: LogFormatJSON}

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "resume_id", "r1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "r1", entry["resume_id"])
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLogLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
