// Package config loads runtime configuration for the mpdash client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string    backend base URL
//	-d string    path of the local SQLite database
//	-t int       request timeout (seconds)
//	-i int       backend liveness check interval (seconds, 0 disables)
//	-s string    shared secret used to verify access tokens
//	-log string  log file path
//	-ephemeral   keep the session in memory only
//
// # File schema
//
// YAML is chosen for .yaml and .yml files, JSON otherwise. Durations use
// timex.Duration, so "10s" and integer nanoseconds are both accepted:
//
//	{
//	  "base_url": "http://127.0.0.1:8000",
//	  "database_path": "mpdash.db",
//	  "request_timeout": "10s",
//	  "ping_interval": "30s",
//	  "token_secret": "",
//	  "log_file": "mpdash.log",
//	  "log_level": "info"
//	}
package config
