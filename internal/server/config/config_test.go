package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"devserver"}, args...)
}

// withEnvFile points the .env lookup at path for the duration of the test.
func withEnvFile(t *testing.T, path string) {
	t.Helper()
	orig := envFile
	t.Cleanup(func() { envFile = orig })
	envFile = path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8000", c.Addr)
	assert.Equal(t, "mpdash-server.db", c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)
	withEnvFile(t, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFlags(t *testing.T) {
	withArgs(t, "-a", "127.0.0.1:9090", "-d", ":memory:", "-s", "k", "-t", "5", "-cors", "http://a, http://b", "-c", "ignored.json")

	cfg := defaults()
	require.NoError(t, parseFlags(cfg))

	want := defaults()
	want.Addr = "127.0.0.1:9090"
	want.DatabaseDSN = ":memory:"
	want.SecretKey = "k"
	want.AccessTokenValidityDuration = 5 * time.Minute
	want.CORSOrigins = []string{"http://a", "http://b"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFlags_Invalid(t *testing.T) {
	withArgs(t, "-t", "abc")
	require.Error(t, parseFlags(defaults()))
}

func TestParseEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("MPDASH_SECRET_KEY=from-file\nMPDASH_ADDR=:7000\n"), 0o600))
	withEnvFile(t, envPath)

	// the process environment wins over .env
	t.Setenv(EnvAddr, ":9000")
	t.Setenv(EnvDatabaseDSN, "env.db")
	t.Setenv(EnvTokenTTL, "90m")
	t.Setenv(EnvCORSOrigins, "http://x")
	t.Cleanup(func() { _ = os.Unsetenv(EnvSecretKey) })

	cfg := defaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "env.db", cfg.DatabaseDSN)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, []string{"http://x"}, cfg.CORSOrigins)
}

func TestParseEnv_BadTTL(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(EnvTokenTTL, "soon")

	require.Error(t, parseEnv(defaults()))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"addr":":1","access_token_validity_duration":"1h","cors_origins":["http://j"]}`), 0o600))
	yamlPath := filepath.Join(dir, "server.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("database_dsn: y.db\nsecret_key: y\n"), 0o600))

	t.Run("json", func(t *testing.T) {
		withArgs(t, "-config", jsonPath)
		cfg := defaults()
		require.NoError(t, parseFile(cfg))

		want := defaults()
		want.Addr = ":1"
		want.AccessTokenValidityDuration = time.Hour
		want.CORSOrigins = []string{"http://j"}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("yaml", func(t *testing.T) {
		withArgs(t, "-c", yamlPath)
		cfg := defaults()
		require.NoError(t, parseFile(cfg))

		want := defaults()
		want.DatabaseDSN = "y.db"
		want.SecretKey = "y"
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("missing", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(dir, "nope.json"))
		require.Error(t, parseFile(defaults()))
	})
}

func TestLoadConfig_EnvTTLKeptWithoutFlag(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(EnvTokenTTL, "90s")

	withArgs(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.AccessTokenValidityDuration)

	withArgs(t, "-t", "5")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_Validation(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "missing.env"))

	withArgs(t, "-t", "0")
	_, err := LoadConfig()
	require.Error(t, err)

	withArgs(t, "-s", "")
	_, err = LoadConfig()
	require.Error(t, err)
}
