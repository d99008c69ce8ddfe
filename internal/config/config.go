// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PROFIL_DB_PATH" envDefault:"./data/profil.db"`
	SessionSecret string `env:"PROFIL_SESSION_SECRET,required"`
	ServerHost    string `env:"PROFIL_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PROFIL_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PROFIL_ENV" envDefault:"development"`

	LogLevel   string `env:"PROFIL_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"PROFIL_UPLOADS_DIR" envDefault:"./uploads"`

	// SiteURL is the absolute base URL used for canonical links, JSON-LD and
	// absolute media URLs handed to API consumers.
	SiteURL  string `env:"PROFIL_SITE_URL" envDefault:"http://localhost:8080"`
	SiteName string `env:"PROFIL_SITE_NAME" envDefault:"Profil"`

	// SitePerson is the profile owner's name, used in Person JSON-LD.
	SitePerson string `env:"PROFIL_SITE_PERSON" envDefault:"Profil"`

	// AllowedOrigins lists front-end origins for CORS, comma separated.
	AllowedOrigins []string `env:"PROFIL_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Cache configuration
	RedisURL     string `env:"PROFIL_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"PROFIL_CACHE_PREFIX" envDefault:"profil:"` // Redis key prefix
	CacheTTL     int    `env:"PROFIL_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"PROFIL_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// hCaptcha protection for the public contact form (pesan)
	HCaptchaSiteKey   string `env:"PROFIL_HCAPTCHA_SITE_KEY"`
	HCaptchaSecretKey string `env:"PROFIL_HCAPTCHA_SECRET_KEY"`

	// GeoIP database for tagging contact messages with a country
	GeoIPDBPath string `env:"PROFIL_GEOIP_DB_PATH"`

	// OpenAI API key for machine-translation drafts (optional)
	OpenAIAPIKey string `env:"PROFIL_OPENAI_API_KEY"`

	// Initial admin account, created on startup when a password is set
	AdminEmail    string `env:"PROFIL_ADMIN_EMAIL" envDefault:"admin@localhost"`
	AdminName     string `env:"PROFIL_ADMIN_NAME" envDefault:"Admin"`
	AdminPassword string `env:"PROFIL_ADMIN_PASSWORD"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// HCaptchaEnabled returns true if hCaptcha is configured.
func (c Config) HCaptchaEnabled() bool {
	return c.HCaptchaSiteKey != "" && c.HCaptchaSecretKey != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// TranslateEnabled returns true if the machine-translation service is configured.
func (c Config) TranslateEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PROFIL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	cfg.SiteURL = strings.TrimSuffix(cfg.SiteURL, "/")

	return cfg, nil
}
