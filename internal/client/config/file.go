package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/mpdash/internal/flagx"
	"github.com/dmitrijs2005/mpdash/internal/timex"
)

// FileConfig is the DTO for config files. Empty fields keep the value
// from the previous layer.
type FileConfig struct {
	BaseURL        string          `json:"base_url" yaml:"base_url"`
	DatabasePath   string          `json:"database_path" yaml:"database_path"`
	RequestTimeout timex.Duration  `json:"request_timeout" yaml:"request_timeout"`
	PingInterval   *timex.Duration `json:"ping_interval" yaml:"ping_interval"`
	TokenSecret    string          `json:"token_secret" yaml:"token_secret"`
	LogFile        string          `json:"log_file" yaml:"log_file"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	Ephemeral      *bool           `json:"ephemeral" yaml:"ephemeral"`
}

// parseFile overlays Config with the file named by -c/-config, if any.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	fc, err := readFile(path)
	if err != nil {
		return err
	}
	fc.apply(cfg)
	return nil
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.PingInterval != nil {
		cfg.PingInterval = fc.PingInterval.Duration
	}
	if fc.TokenSecret != "" {
		cfg.TokenSecret = fc.TokenSecret
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Ephemeral != nil {
		cfg.Ephemeral = *fc.Ephemeral
	}
}
