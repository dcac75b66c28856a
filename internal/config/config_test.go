package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Clear anything the developer's shell may have exported; getEnv
	// treats empty as unset.
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "MAIL_FROM_NAME", "MAIL_PROVIDER",
		"SUBMIT_RATE_PER_SEC", "SUBMIT_BURST", "REDIS_TLS", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Campus Lost & Found", cfg.MailFromName)
	assert.Equal(t, "", cfg.MailProvider)
	assert.Equal(t, 1.0, cfg.SubmitRatePerSec)
	assert.Equal(t, 5, cfg.SubmitBurst)
	assert.False(t, cfg.RedisTLS)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("MAIL_PROVIDER", " SendGrid ")
	t.Setenv("SUBMIT_RATE_PER_SEC", "2.5")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://lostfound.campus.edu, https://admin.campus.edu")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "sendgrid", cfg.MailProvider, "provider should be trimmed and lower-cased")
	assert.Equal(t, 2.5, cfg.SubmitRatePerSec)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://lostfound.campus.edu", "https://admin.campus.edu"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SUBMIT_BURST", "lots")
	t.Setenv("SUBMIT_RATE_PER_SEC", "")

	cfg := Load()

	assert.Equal(t, 5, cfg.SubmitBurst)
	assert.Equal(t, 1.0, cfg.SubmitRatePerSec)
}
