package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "listen: 127.0.0.1:8080\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, "./data/moneta.db", cfg.Database.Path)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "gemini-2.5-flash", cfg.Assistant.Model)
	assert.Equal(t, "rupees", cfg.Assistant.Currency)
	assert.InDelta(t, 0.95, cfg.Assistant.TopP, 0.0001)
	assert.Equal(t, 60*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, "0 3 * * *", cfg.MaintenanceSchedule)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
listen: " 0.0.0.0:9000 "
session_key: supersecret
database:
  path: /tmp/test.db
cache:
  type: memory
  ttl: 30s
assistant:
  api_key: " abc "
  model: gemini-test
  currency: euros
  timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "supersecret", cfg.SessionKey)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "abc", cfg.Assistant.APIKey)
	assert.Equal(t, "gemini-test", cfg.Assistant.Model)
	assert.Equal(t, "euros", cfg.Assistant.Currency)
	assert.Equal(t, 5*time.Second, cfg.Assistant.Timeout)
	assert.True(t, cfg.HasAssistant())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "listen: 127.0.0.1:8080\n")
	t.Setenv("MONETA_LISTEN", "127.0.0.1:7000")
	t.Setenv("MONETA_ASSISTANT_CURRENCY", "dollars")
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Listen)
	assert.Equal(t, "dollars", cfg.Assistant.Currency)
	assert.Equal(t, "from-env", cfg.Assistant.APIKey)
}

func TestLoad_PrefixedAPIKeyWins(t *testing.T) {
	path := writeConfig(t, "listen: 127.0.0.1:8080\n")
	t.Setenv("MONETA_ASSISTANT_API_KEY", "prefixed")
	t.Setenv("GEMINI_API_KEY", "plain")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Assistant.APIKey)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "listen: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Listen:              "0.0.0.0:5000",
			SessionMaxAge:       3600,
			BcryptCost:          10,
			MaintenanceSchedule: "0 3 * * *",
			Database:            &DatabaseConfig{Path: "moneta.db"},
			Cache:               &CacheConfig{Type: CacheTypeMemory, TTL: time.Minute},
			Assistant:           &AssistantConfig{Model: "gemini", Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing listen", mutate: func(c *Config) { c.Listen = "" }, wantErr: "listen address is required"},
		{name: "bad session age", mutate: func(c *Config) { c.SessionMaxAge = 0 }, wantErr: "session max age"},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }, wantErr: "bcrypt cost"},
		{name: "bad cron", mutate: func(c *Config) { c.MaintenanceSchedule = "* * *" }, wantErr: "5 fields"},
		{name: "empty cron disables job", mutate: func(c *Config) { c.MaintenanceSchedule = "" }},
		{name: "missing database", mutate: func(c *Config) { c.Database = nil }, wantErr: "database path is required"},
		{name: "redis without url", mutate: func(c *Config) { c.Cache.Type = CacheTypeRedis }, wantErr: "Redis URL is required"},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache.Type = "memcached" }, wantErr: "unknown cache type"},
		{name: "nil cache gets default", mutate: func(c *Config) { c.Cache = nil }},
		{name: "missing assistant", mutate: func(c *Config) { c.Assistant = nil }, wantErr: "missing assistant config"},
		{name: "missing model", mutate: func(c *Config) { c.Assistant.Model = "" }, wantErr: "assistant model is required"},
		{name: "zero timeout", mutate: func(c *Config) { c.Assistant.Timeout = 0 }, wantErr: "assistant timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.NotNil(t, c.Cache)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateSessionKey(t *testing.T) {
	a, err := GenerateSessionKey()
	require.NoError(t, err)
	b, err := GenerateSessionKey()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
