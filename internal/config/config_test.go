package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{"DB_DRIVER", "DB_DSN", "SERVER_PORT", "SESSION_SECRET",
		"IDENTITY_HEADER", "LOG_LEVEL", "LOG_FORMAT", "MATRIX_LABELS", "DASHBOARD_CACHE_TTL"} {
		t.Setenv(k, kv[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"DB_DSN": "host=db", "SESSION_SECRET": "s3cret"})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "X-Forwarded-User", cfg.IdentityHeader)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.DashboardCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"DB_DRIVER":           "sqlite",
		"DB_DSN":              "hms.db",
		"SESSION_SECRET":      "s3cret",
		"SERVER_PORT":         "9000",
		"DASHBOARD_CACHE_TTL": "2m",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 2*time.Minute, cfg.DashboardCacheTTL)
}

func TestLoad_Errors(t *testing.T) {
	setEnv(t, map[string]string{"SESSION_SECRET": "s3cret"})
	_, err := Load()
	assert.Error(t, err, "missing DSN")

	setEnv(t, map[string]string{"DB_DSN": "x"})
	_, err = Load()
	assert.Error(t, err, "missing session secret")

	setEnv(t, map[string]string{"DB_DSN": "x", "SESSION_SECRET": "s", "DB_DRIVER": "oracle"})
	_, err = Load()
	assert.Error(t, err, "unknown driver")

	setEnv(t, map[string]string{"DB_DSN": "x", "SESSION_SECRET": "s", "DASHBOARD_CACHE_TTL": "soon"})
	_, err = Load()
	assert.Error(t, err, "bad ttl")
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadLabels(t *testing.T) {
	labels, err := LoadLabels("")
	require.NoError(t, err)
	assert.Equal(t, "Mulig", labels.LikelihoodName(3))

	path := writeFile(t, `
[[likelihood]]
score = 3
name = "Kan skje"

[[consequence]]
score = 5
name = "Dødsfall"
`)
	labels, err = LoadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, "Kan skje", labels.LikelihoodName(3))
	assert.Equal(t, "Dødsfall", labels.ConsequenceName(5))
	assert.Equal(t, "Liten", labels.ConsequenceName(2))
}

func TestLoadLabels_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"out of range": "[[likelihood]]\nscore = 6\nname = \"x\"\n",
		"empty name":   "[[consequence]]\nscore = 1\nname = \"\"\n",
		"duplicate":    "[[likelihood]]\nscore = 1\nname = \"a\"\n[[likelihood]]\nscore = 1\nname = \"b\"\n",
		"not toml":     "likelihood = [",
	} {
		_, err := LoadLabels(writeFile(t, body))
		assert.Error(t, err, name)
	}

	_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
