package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every BOARD_* variable for the test and points envFile
// at a file that does not exist.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envAPIServerHost, envRequestTimeout, envSessionDB, envCookieSecure, envLogFormat} {
		t.Setenv(k, "")
	}
	orig := envFile
	envFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { envFile = orig })
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAPIServerHost, "https://boards.example.com")
	t.Setenv(envRequestTimeout, "5s")
	t.Setenv(envSessionDB, "/tmp/s.db")
	t.Setenv(envCookieSecure, "true")
	t.Setenv(envLogFormat, "json")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "https://boards.example.com", cfg.APIServerHost)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/s.db", cfg.SessionDBPath)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParseEnv_TimeoutInSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv(envRequestTimeout, "7")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCookieSecure, "maybe")
	require.Panics(t, func() { parseEnv(defaults()) })

	clearEnv(t)
	t.Setenv(envRequestTimeout, "soon")
	require.Panics(t, func() { parseEnv(defaults()) })
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	clearEnv(t)
	// clearEnv registered the restore; godotenv never overrides a variable
	// that exists, even when empty.
	require.NoError(t, os.Unsetenv(envSessionDB))
	require.NoError(t, os.Unsetenv(envAPIServerHost))

	envFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"BOARD_SESSION_DB=dotenv.db\nBOARD_API_SERVER_HOST=http://dotenv:9\n"), 0o600))

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "dotenv.db", cfg.SessionDBPath)
	assert.Equal(t, "http://dotenv:9", cfg.APIServerHost)
}
