package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "http://localhost:8000/infer/live/v1", cfg.Inference.Endpoint())
	require.Zero(t, cfg.Inference.Timeout)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APPHOST", "model.internal")
	t.Setenv("APPPORT", "9001")
	t.Setenv("MDL_VERSION", "2024-07")
	t.Setenv("INFERENCE_TIMEOUT", "3s")
	t.Setenv("SESSION_REDIS_ENABLED", "true")
	t.Setenv("SESSION_REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://model.internal:9001/infer/live/2024-07", cfg.Inference.Endpoint())
	require.Equal(t, 3*time.Second, cfg.Inference.Timeout)
	require.True(t, cfg.Session.Redis.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadLiteralURLWins(t *testing.T) {
	t.Setenv("INFERENCE_URL", "http://127.0.0.1:5000/infer/live/fixed")
	t.Setenv("APPPORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:5000/infer/live/fixed", cfg.Inference.Endpoint())
}

func TestLoadFromFileAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("http:\n  address: \":9090\"\ninference:\n  host: yaml-host\n"), 0o600))
	envPath := filepath.Join(dir, "app.env")
	require.NoError(t, os.WriteFile(envPath, []byte("MDL_VERSION=from-dotenv\n"), 0o600))

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("ENV_FILE", envPath)
	// Register for cleanup so the value godotenv sets does not leak into other tests.
	t.Setenv("MDL_VERSION", "")
	require.NoError(t, os.Unsetenv("MDL_VERSION"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "http://yaml-host:8000/infer/live/from-dotenv", cfg.Inference.Endpoint())
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty address":      func(c *Config) { c.HTTP.Address = "" },
		"bad port":           func(c *Config) { c.Inference.Port = "70000" },
		"empty host":         func(c *Config) { c.Inference.Host = " " },
		"empty version":      func(c *Config) { c.Inference.ModelVersion = "" },
		"relative url":       func(c *Config) { c.Inference.URL = "/infer/live/v1" },
		"negative timeout":   func(c *Config) { c.Inference.Timeout = -time.Second },
		"redis without addr": func(c *Config) { c.Session.Redis.Enabled = true },
		"zero burst":         func(c *Config) { c.HTTP.RateLimit.Burst = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
