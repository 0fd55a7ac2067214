package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the mpdash client.
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
	PingInterval   time.Duration
	TokenSecret    string
	LogFile        string
	LogLevel       string
	Ephemeral      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000"
	c.DatabasePath = "mpdash.db"
	c.RequestTimeout = 10 * time.Second
	c.PingInterval = 30 * time.Second
	c.TokenSecret = ""
	c.LogFile = "mpdash.log"
	c.LogLevel = "info"
	c.Ephemeral = false
}

// LoadConfig applies defaults, then the optional config file, then
// command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
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
	if c.BaseURL == "" {
		return fmt.Errorf("config: base url is empty")
	}
	if !c.Ephemeral && c.DatabasePath == "" {
		return fmt.Errorf("config: database path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.PingInterval < 0 {
		return fmt.Errorf("config: ping interval must not be negative, got %s", c.PingInterval)
	}
	return nil
}
