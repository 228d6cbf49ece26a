package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds configuration for JWT generation and validation. User
// tokens authenticate API calls; resume access tokens are issued after a
// password check and unlock one protected public resume.
type JWTConfig struct {
	Secret              string
	ExpirationHours     int
	ResumeAccessMinutes int
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default: 24) and
// RESUME_ACCESS_MINUTES (default: 60).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationHours, err := intEnv("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	accessMinutes, err := intEnv("RESUME_ACCESS_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	config := &JWTConfig{
		Secret:              secret,
		ExpirationHours:     expirationHours,
		ResumeAccessMinutes: accessMinutes,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	if c.ResumeAccessMinutes < 1 {
		return fmt.Errorf("RESUME_ACCESS_MINUTES must be at least 1 minute, got: %d", c.ResumeAccessMinutes)
	}
	return nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return n, nil
}
