// Package config reads the process environment and the site file
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"folio_app_echo/internal/models"
)

// Preference backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port              string
	Env               string
	SiteConfigPath    string
	ContentBaseURL    string
	ContentDir        string
	PreferenceBackend string
	RedisURL          string
	DatabaseURL       string
	SessionTTL        time.Duration
	MaxSessions       int
}

// Site is the content of the site file
type Site struct {
	Title       string         `yaml:"title"`
	Profile     models.Profile `yaml:"profile"`
	ProjectIDs  []string       `yaml:"projectIds"`
	BlogPostIDs []string       `yaml:"blogPostIds"`
}

// LoadEnv loads .env when present. It reports whether a file was found.
func LoadEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// FromEnv builds the config from environment variables
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		SiteConfigPath:    getEnv("SITE_CONFIG", "config/site.yaml"),
		ContentBaseURL:    os.Getenv("CONTENT_BASE_URL"),
		ContentDir:        getEnv("CONTENT_DIR", "web/content"),
		PreferenceBackend: strings.ToLower(getEnv("PREFERENCE_BACKEND", BackendMemory)),
		RedisURL:          os.Getenv("REDIS_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SessionTTL:        30 * time.Minute,
		MaxSessions:       10000,
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}

	if raw := os.Getenv("MAX_SESSIONS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS %q: %w", raw, err)
		}
		cfg.MaxSessions = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the chosen backend has what it needs
func (c *Config) Validate() error {
	switch c.PreferenceBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("PREFERENCE_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PREFERENCE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown PREFERENCE_BACKEND %q", c.PreferenceBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NewLogger builds the application logger. Production logs are JSON at info
// level, otherwise colored console output at debug level.
func NewLogger(production bool) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}

// LoadSite reads and parses the site file
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}
	return ParseSite(data)
}

// ParseSite parses a site file. The title defaults to the owner's name.
func ParseSite(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse site config: %w", err)
	}
	if strings.TrimSpace(site.Profile.FullName) == "" {
		return nil, fmt.Errorf("site config: profile.fullName is required")
	}
	if site.Title == "" {
		site.Title = site.Profile.FullName + " | Portfolio"
	}
	return &site, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
