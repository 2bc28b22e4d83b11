package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "SITE_CONFIG", "CONTENT_BASE_URL", "CONTENT_DIR", "PREFERENCE_BACKEND", "REDIS_URL", "DATABASE_URL", "SESSION_TTL", "MAX_SESSIONS"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "config/site.yaml", cfg.SiteConfigPath)
	assert.Equal(t, "web/content", cfg.ContentDir)
	assert.Equal(t, BackendMemory, cfg.PreferenceBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10000, cfg.MaxSessions)
	assert.False(t, cfg.IsProduction())
}

func TestNewLogger(t *testing.T) {
	for _, production := range []bool{true, false} {
		logger, err := NewLogger(production)
		require.NoError(t, err)
		assert.Equal(t, !production, logger.Core().Enabled(zapcore.DebugLevel))
	}
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"redis without url", map[string]string{"PREFERENCE_BACKEND": "redis"}, true},
		{"redis with url", map[string]string{"PREFERENCE_BACKEND": "redis", "REDIS_URL": "redis://localhost:6379/0"}, false},
		{"postgres without dsn", map[string]string{"PREFERENCE_BACKEND": "postgres"}, true},
		{"unknown backend", map[string]string{"PREFERENCE_BACKEND": "sqlite"}, true},
		{"bad ttl", map[string]string{"SESSION_TTL": "soon"}, true},
		{"negative ttl", map[string]string{"SESSION_TTL": "-1m"}, true},
		{"custom ttl", map[string]string{"SESSION_TTL": "2h"}, false},
		{"bad session limit", map[string]string{"MAX_SESSIONS": "many"}, true},
		{"zero session limit", map[string]string{"MAX_SESSIONS": "0"}, true},
		{"custom session limit", map[string]string{"MAX_SESSIONS": "500"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PREFERENCE_BACKEND", "REDIS_URL", "DATABASE_URL", "SESSION_TTL", "MAX_SESSIONS"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSite(t *testing.T) {
	site, err := ParseSite([]byte(`
profile:
  fullName: Jane Doe
  jobTitle: Data Scientist
  contact:
    email: jane@example.com
    github: https://github.com/jane
  workHistory:
    - role: Lead Data Scientist
      company: Acme
      skills: [Python, MLOps]
projectIds: [churn, iot]
blogPostIds:
  - mlops
`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe | Portfolio", site.Title)
	assert.Equal(t, "https://github.com/jane", site.Profile.Contact.GitHub)
	require.Len(t, site.Profile.WorkHistory, 1)
	assert.Equal(t, []string{"Python", "MLOps"}, site.Profile.WorkHistory[0].Skills)
	assert.Equal(t, []string{"churn", "iot"}, site.ProjectIDs)
	assert.Equal(t, []string{"mlops"}, site.BlogPostIDs)
}

func TestParseSiteErrors(t *testing.T) {
	_, err := ParseSite([]byte("profile: ["))
	assert.Error(t, err)

	_, err = ParseSite([]byte("projectIds: [a]"))
	assert.ErrorContains(t, err, "fullName")
}

func TestLoadSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Folio\nprofile:\n  fullName: Jane Doe\n"), 0o644))

	site, err := LoadSite(path)
	require.NoError(t, err)
	assert.Equal(t, "Folio", site.Title)

	_, err = LoadSite(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedSiteFile(t *testing.T) {
	site, err := LoadSite(filepath.Join("..", "..", "config", "site.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, site.ProjectIDs)
	assert.NotEmpty(t, site.BlogPostIDs)
}
