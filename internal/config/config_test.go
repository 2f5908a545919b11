package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvTimeout, EnvAddr, EnvDB, EnvLogFile, EnvDebug} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	c := NewConfig()

	assert.Equal(t, "http://localhost:5000", c.API.BaseURL)
	assert.Equal(t, 10*time.Second, c.API.Timeout)
	assert.Equal(t, ":5000", c.Server.Addr)
	assert.Equal(t, "tasks.db", c.Server.DBPath)
	assert.Empty(t, c.Log.File)
	assert.False(t, c.Log.Debug)
	require.NoError(t, c.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIURL, "http://tasks.internal:8080/")
	t.Setenv(EnvTimeout, "3s")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvLogFile, "/tmp/taskdeck.log")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://tasks.internal:8080/", c.API.BaseURL)
	assert.Equal(t, "http://tasks.internal:8080", c.APIBaseURL())
	assert.Equal(t, 3*time.Second, c.API.Timeout)
	assert.True(t, c.Log.Debug)
	assert.Equal(t, "/tmp/taskdeck.log", c.Log.File)
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TASKDECK_API_URL=http://127.0.0.1:9999\nTASKDECK_DB=/var/lib/tasks.db\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv(EnvAPIURL)
		os.Unsetenv(EnvDB)
	})

	c, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", c.API.BaseURL)
	assert.Equal(t, "/var/lib/tasks.db", c.Server.DBPath)
}

func TestLoad_EnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TASKDECK_API_URL=http://from-file:1\n"), 0644))
	t.Setenv(EnvAPIURL, "http://from-env:2")

	c, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", c.API.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{name: "bad timeout", key: EnvTimeout, value: "soon", field: "api.timeout"},
		{name: "negative timeout", key: EnvTimeout, value: "-1s", field: "api.timeout"},
		{name: "bad debug", key: EnvDebug, value: "maybe", field: "log.debug"},
		{name: "bad url", key: EnvAPIURL, value: "localhost:5000", field: "api.base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_EmptyFields(t *testing.T) {
	c := NewConfig()
	c.Server.Addr = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.addr")

	c = NewConfig()
	c.Server.DBPath = ""
	require.Error(t, c.Validate())
}
