package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var variables = []string{
	"CONVERTER_API_URL",
	"CONVERTER_API_KEY",
	"CONVERTER_API_TIMEOUT",
	"CONVERTER_DB_DSN",
	"CONVERTER_DB_MIGRATE",
	"CONVERTER_LOG_LEVEL",
}

// clearEnv unsets every CONVERTER_ variable for the test and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range variables {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.exchangerate.host", cfg.API.URL)
	assert.Equal(t, "", cfg.API.Key)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "postgres://localhost:5432/currency?sslmode=disable", cfg.DB.DSN)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONVERTER_API_URL", "http://localhost:9999")
	t.Setenv("CONVERTER_API_KEY", "secret")
	t.Setenv("CONVERTER_API_TIMEOUT", "250ms")
	t.Setenv("CONVERTER_DB_MIGRATE", "false")
	t.Setenv("CONVERTER_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.API.URL)
	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, 250*time.Millisecond, cfg.API.Timeout)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONVERTER_DB_DSN=postgres://rates@db:5432/rates\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://rates@db:5432/rates", cfg.DB.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad level", "CONVERTER_LOG_LEVEL", "loud"},
		{"bad timeout", "CONVERTER_API_TIMEOUT", "soon"},
		{"zero timeout", "CONVERTER_API_TIMEOUT", "0s"},
		{"bad bool", "CONVERTER_DB_MIGRATE", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONVERTER_DB_DSN", "postgres://exported@db:5432/rates")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONVERTER_DB_DSN=postgres://dotenv@db:5432/rates\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://exported@db:5432/rates", cfg.DB.DSN)
}

func TestUsage(t *testing.T) {
	usage := Usage()
	assert.Contains(t, usage, "CONVERTER_API_URL")
	assert.Contains(t, usage, "CONVERTER_LOG_LEVEL")
}
