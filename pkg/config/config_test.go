package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "captable", cfg.JWTIssuer)
	assert.Equal(t, 30, cfg.AccessTTLMinutes)
	assert.Equal(t, 60*24*7, cfg.RefreshTTLMinutes)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "testing", cfg.Environment)
	assert.Equal(t, 5, cfg.AccessTTLMinutes)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, 587, cfg.SMTPPort)
}
