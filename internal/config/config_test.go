package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDevConfig() *Config {
	return &Config{
		JWTSecret: "dev-secret",
		Port:      "8080",
		PageSize:  10,
		Env:       "development",
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := validDevConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, "PAGE_SIZE must be positive"},
		{"negative page size", func(c *Config) { c.PageSize = -1 }, "PAGE_SIZE must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDevConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_ProductionHardening(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret:  strings.Repeat("s", 32),
			Port:       "8080",
			PageSize:   10,
			Env:        "production",
			DBPassword: "a-real-database-password",
			DBSSLMode:  "require",
		}
	}

	t.Run("valid production config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("rejects default jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.ErrorContains(t, cfg.Validate(), "changed from the default")
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "short"
		assert.ErrorContains(t, cfg.Validate(), "at least 32 characters")
	})

	t.Run("rejects default db password", func(t *testing.T) {
		cfg := base()
		cfg.DBPassword = "password"
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("prod alias is also hardened", func(t *testing.T) {
		cfg := base()
		cfg.Env = "prod"
		cfg.DBPassword = ""
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})
}
