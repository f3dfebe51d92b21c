package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseViper() *viper.Viper {
	v := viper.New()
	v.Set("STORAGE_SIGNING_KEY", "secret")
	v.Set("SEARCH_ENDPOINT", "https://search.example.net")
	v.Set("SEARCH_INDEX", "jobs")
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(baseViper())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "resume", cfg.Storage.ResumeFolder)
	assert.Equal(t, "enhanced_cv", cfg.Storage.EnhancedFolder)
	assert.Equal(t, 60*time.Minute, cfg.Storage.LinkTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, 20, cfg.Search.Top)
	assert.Equal(t, "job_desc,req_skills", cfg.Search.HighlightFields)
	assert.False(t, cfg.OCR.Enabled())
	assert.False(t, cfg.Cache.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SEARCH_TOP", "5")
	t.Setenv("SAS_EXPIRY", "15m")

	cfg, err := Load(baseViper())
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 5, cfg.Search.Top)
	assert.Equal(t, 15*time.Minute, cfg.Storage.LinkTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
	}{
		{name: "missing signing key", set: map[string]any{"STORAGE_SIGNING_KEY": ""}},
		{name: "unknown provider", set: map[string]any{"LLM_PROVIDER": "bard"}},
		{name: "azure without deployment", set: map[string]any{"LLM_PROVIDER": "azure", "AZURE_OPENAI_ENDPOINT": "https://x"}},
		{name: "index without endpoint", set: map[string]any{"SEARCH_ENDPOINT": ""}},
		{name: "unknown backend", set: map[string]any{"SEARCH_BACKEND": "solr"}},
		{name: "gemini provider without key", set: map[string]any{"LLM_PROVIDER": "gemini", "GEMINI_API_KEY": ""}},
		{name: "pgvector without gemini key", set: map[string]any{"SEARCH_BACKEND": "pgvector", "GEMINI_API_KEY": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := baseViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "jobs", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=jobs port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
