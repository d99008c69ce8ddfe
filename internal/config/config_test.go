package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("PROFIL_SESSION_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("PROFIL_SESSION_SECRET", "too-short")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROFIL_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/profil.db", cfg.DBPath)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UseRedisCache())
	assert.False(t, cfg.HCaptchaEnabled())
	assert.False(t, cfg.TranslateEnabled())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadTrimsSiteURL(t *testing.T) {
	t.Setenv("PROFIL_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PROFIL_SITE_URL", "https://profil.example.org/")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://profil.example.org", cfg.SiteURL)
}

func TestUseRedisCache(t *testing.T) {
	t.Setenv("PROFIL_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PROFIL_REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UseRedisCache())
}
