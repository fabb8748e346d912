package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port             string `mapstructure:"PORT"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DBMaxConns       int32  `mapstructure:"DB_MAX_CONNS"`
	DBSimpleProtocol bool   `mapstructure:"DB_SIMPLE_PROTOCOL"`
	AutoMigrate      bool   `mapstructure:"AUTO_MIGRATE"`
	JWTSecret        string `mapstructure:"JWT_SECRET"`
	JWTIssuer        string `mapstructure:"JWT_ISSUER"`
	JWTTTLMinutes    int    `mapstructure:"JWT_TTL_MINUTES"`
	CORSAllowed      string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	LogFormat        string `mapstructure:"LOG_FORMAT"`
	RedisURL         string `mapstructure:"REDIS_URL"`
	LoginRateLimit   int    `mapstructure:"LOGIN_RATE_LIMIT_PER_MINUTE"`

	// When set and the users table is empty, an administrator is created at
	// startup.
	BootstrapAdminEmail    string `mapstructure:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`
	BootstrapAdminName     string `mapstructure:"BOOTSTRAP_ADMIN_NAME"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// AutomaticEnv only feeds Unmarshal for keys viper already knows about,
	// so every key needs a default.
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_SIMPLE_PROTOCOL", false)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "sipas-api")
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOGIN_RATE_LIMIT_PER_MINUTE", 10)
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	v.SetDefault("BOOTSTRAP_ADMIN_NAME", "Administrator")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = 10
	}
	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 10
	}
	if (cfg.BootstrapAdminEmail == "") != (cfg.BootstrapAdminPassword == "") {
		return Config{}, errors.New("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// JWTTTL is the token lifetime. Non-positive values fall back to an hour.
func (c Config) JWTTTL() time.Duration {
	if c.JWTTTLMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// CORSOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) CORSOrigins() []string {
	return parseCSV(c.CORSAllowed)
}

// RateLimitEnabled reports whether login rate limiting has a Redis backend.
func (c Config) RateLimitEnabled() bool {
	return c.RedisURL != ""
}

// BootstrapAdmin reports whether an initial administrator is configured.
func (c Config) BootstrapAdmin() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword != ""
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
