// Package config handles configuration for the development backend: defaults,
// an optional JSON or YAML file, environment variables (with .env support)
// and command-line flags, applied in that order.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the mpdash development backend.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - DatabaseDSN: SQLite path (or ":memory:").
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: access token lifetime.
//   - CORSOrigins: allowed browser origins.
type Config struct {
	Addr                        string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	CORSOrigins                 []string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside local runs.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.DatabaseDSN = "mpdash-server.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.CORSOrigins = []string{"*"}
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the optional config file,
// then the environment, and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: listen address is empty")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("config: database dsn is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("config: secret key is empty")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("config: token validity must be positive, got %s", c.AccessTokenValidityDuration)
	}
	return nil
}
