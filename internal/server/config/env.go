package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAddr        = "MPDASH_ADDR"
	EnvDatabaseDSN = "MPDASH_DATABASE_DSN"
	EnvSecretKey   = "MPDASH_SECRET_KEY"
	EnvTokenTTL    = "MPDASH_TOKEN_TTL"
	EnvCORSOrigins = "MPDASH_CORS_ORIGINS"
)

// envFile is loaded when present. Variables already set in the process
// environment win over the file.
var envFile = ".env"

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvSecretKey); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
		cfg.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvCORSOrigins); ok && v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
