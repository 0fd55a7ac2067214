package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/mpdash/internal/flagx"
)

// parseFlags overlays Config with command-line flags. os.Args is filtered
// with flagx.FilterArgs first so flags owned by other layers (-c, -version)
// do not trip this FlagSet.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-i", "-s", "-log", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local SQLite database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	ping := fs.Int("i", int(cfg.PingInterval.Seconds()), "backend liveness check interval (in seconds, 0 disables)")
	fs.StringVar(&cfg.TokenSecret, "s", cfg.TokenSecret, "secret used to verify access tokens")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Second-granular flags only replace durations they were given for, so
	// values like "2500ms" from the file survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.PingInterval = time.Duration(*ping) * time.Second
		}
	})
	if flagx.HasBoolFlag(os.Args[1:], "-ephemeral", "--ephemeral") {
		cfg.Ephemeral = true
	}
	return nil
}
