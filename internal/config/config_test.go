package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "24h", cfg.JWT.TokenExpiration)
	assert.Equal(t, "eduverse.app", cfg.JWT.Issuer)
	assert.Equal(t, "https://api.razorpay.com/v1", cfg.Payment.BaseURL)
	assert.False(t, cfg.PaymentConfigured())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: file-secret
server:
  port: "9090"
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoadConfigInvalidTokenExpiration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
  token_expiration: not-a-duration
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigDemoRequiresCredentials(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
demo:
  enabled: true
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo")
}

func TestGetPostgresConnectionString(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
database:
  host: db.internal
  port: "5433"
  user: eduverse
  password: pw
  dbname: eduverse_test
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t,
		"postgres://eduverse:pw@db.internal:5433/eduverse_test?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
