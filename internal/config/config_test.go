package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "codewisehub", cfg.Database.DBName)
	assert.Equal(t, "168h", cfg.Session.TTL)
	assert.Equal(t, "sessionToken", cfg.Session.CookieName)
	assert.Equal(t, "codewisehub.app", cfg.Session.Issuer)
	assert.False(t, cfg.Policy.RejectDuplicateParentLinks)
	assert.False(t, cfg.Policy.EnforceSchoolCapacity)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	configYAML := `
server:
  port: "8080"
  mode: production
session:
  ttl: 24h
policy:
  enforce_school_capacity: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "24h", cfg.Session.TTL)
	assert.True(t, cfg.Policy.EnforceSchoolCapacity)
	// Untouched keys keep their defaults.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.False(t, cfg.Policy.RejectDuplicateParentLinks)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_NAME", "codewisehub_test")
	t.Setenv("POLICY_ENFORCE_SUBSCRIPTION_EXPIRY", "true")

	configYAML := `
server:
  port: "8080"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "codewisehub_test", cfg.Database.DBName)
	assert.True(t, cfg.Policy.EnforceSubscriptionExpiry)
}

func TestLoadConfigValidation(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	// Session secret is mandatory; there is no baked-in fallback.
	t.Setenv("SESSION_SECRET", "")
	_, err := LoadConfig(missing)
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "one week")
	_, err = LoadConfig(missing)
	assert.Error(t, err)

	t.Setenv("SESSION_TTL", "168h")
	t.Setenv("SESSION_SWEEP_INTERVAL", "hourly")
	_, err = LoadConfig(missing)
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "codewisehub"

	assert.Equal(t,
		"postgres://app:pw@db.internal:5433/codewisehub?sslmode=disable",
		cfg.GetPostgresConnectionString())

	cfg.Database.SSLMode = "require"
	assert.Equal(t,
		"postgres://app:pw@db.internal:5433/codewisehub?sslmode=require",
		cfg.GetPostgresConnectionString())
}
