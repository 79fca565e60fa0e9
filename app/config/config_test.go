package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// the package directory holds no app.yaml
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "data/centros_saude.csv", cfg.Data.Path)
	assert.Equal(t, []string{"http://127.0.0.1:5500", "https://matdias0307.github.io"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10000, cfg.Cache.Size)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Mongo.URL)
	assert.Equal(t, 0.6, cfg.Similarity.Threshold)
	assert.Equal(t, 2, cfg.Quality.MaxDistance)
	assert.Equal(t, 0.95, cfg.Quality.MinJaroWinkler)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
  port: "8080"
data:
  path: /srv/centros.csv
cache:
  ttl: 10m
similarity:
  threshold: 0.75
`), 0o644))

	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "/srv/centros.csv", cfg.Data.Path)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 0.75, cfg.Similarity.Threshold)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
