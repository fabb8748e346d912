package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/sipas")
	t.Setenv("JWT_SECRET", "s3cret")
	for _, key := range []string{
		"PORT", "JWT_ISSUER", "JWT_TTL_MINUTES", "CORS_ALLOWED_ORIGINS", "DB_MAX_CONNS",
		"AUTO_MIGRATE", "REDIS_URL", "BOOTSTRAP_ADMIN_EMAIL", "BOOTSTRAP_ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "sipas-api", cfg.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.JWTTTL())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
	assert.EqualValues(t, 10, cfg.DBMaxConns)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.RateLimitEnabled())
	assert.False(t, cfg.BootstrapAdmin())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ISSUER", "custom")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, "custom", cfg.JWTIssuer)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
	assert.EqualValues(t, 25, cfg.DBMaxConns)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.RateLimitEnabled())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s3cret")

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/sipas")
	t.Setenv("JWT_SECRET", "  ")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadBootstrapAdminNeedsBothValues(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "admin@example.com")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "changeme")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.BootstrapAdmin())
	assert.Equal(t, "Administrator", cfg.BootstrapAdminName)
}

func TestJWTTTLFallback(t *testing.T) {
	assert.Equal(t, time.Hour, Config{JWTTTLMinutes: -5}.JWTTTL())
}
