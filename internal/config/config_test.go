package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_DEBUG", "SERVER_PORT", "ADMIN_API_KEY", "DB_DRIVER", "DB_ENGINE", "DATABASE_URL",
		"WEBHOOK_SECRET", "WEBHOOK_MAX_RETRIES", "WEBHOOK_RETRY_DELAY", "WEBHOOK_TIMEOUT", "WEBHOOK_RETRY_NON_2XX",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Server.AdminAPIKey)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "bun", cfg.Database.Engine)
	assert.Equal(t, DefaultWebhookSecret, cfg.Webhook.Secret)
	assert.False(t, cfg.Webhook.SecretFromEnv)
	assert.Equal(t, 3, cfg.Webhook.MaxRetries)
	assert.Equal(t, time.Second, cfg.Webhook.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
	assert.False(t, cfg.Webhook.RetryOnNon2xx)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("WEBHOOK_SECRET", "prod-secret")
	t.Setenv("WEBHOOK_RETRY_DELAY", "250")
	t.Setenv("WEBHOOK_TIMEOUT", "3s")
	t.Setenv("WEBHOOK_RETRY_NON_2XX", "true")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ADMIN_API_KEY", "admin-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "prod-secret", cfg.Webhook.Secret)
	assert.True(t, cfg.Webhook.SecretFromEnv)
	assert.Equal(t, 250*time.Millisecond, cfg.Webhook.RetryDelay)
	assert.Equal(t, 3*time.Second, cfg.Webhook.Timeout)
	assert.True(t, cfg.Webhook.RetryOnNon2xx)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "admin-key", cfg.Server.AdminAPIKey)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("testdata/webhook.env")
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("WEBHOOK_SECRET")
		os.Unsetenv("WEBHOOK_MAX_RETRIES")
	})

	assert.Equal(t, "from-dotenv-file", cfg.Webhook.Secret)
	assert.Equal(t, 5, cfg.Webhook.MaxRetries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "driver desconhecido", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "engine desconhecida", mutate: func(c *Config) { c.Database.Engine = "gorm" }, wantErr: true},
		{name: "sqlx sem postgres", mutate: func(c *Config) { c.Database.Engine = "sqlx"; c.Database.Driver = "sqlite" }, wantErr: true},
		{name: "zero tentativas", mutate: func(c *Config) { c.Webhook.MaxRetries = 0 }, wantErr: true},
		{name: "timeout zero", mutate: func(c *Config) { c.Webhook.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{Driver: "postgres", Engine: "bun"},
				Webhook:  WebhookConfig{MaxRetries: 3, Timeout: time.Second},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
