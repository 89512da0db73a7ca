package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "advanced_movies.db", cfg.DB.Path)
	assert.Equal(t, 5*time.Second, cfg.DB.BusyTimeout)
	assert.False(t, cfg.SkipSeed)
	assert.Equal(t, 10, cfg.TopLimit)
	assert.False(t, cfg.Debug)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("MOVIES_DB_PATH", "/tmp/from-env.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DB.Path)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.yml")
	yml := "debug: true\nskip_seed: true\ntop_limit: 3\ndb:\n  path: data/movies.db\n  busy_timeout: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("MOVIES_TOP_LIMIT", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.SkipSeed)
	assert.Equal(t, 7, cfg.TopLimit)
	assert.Equal(t, "data/movies.db", cfg.DB.Path)
	assert.Equal(t, 2*time.Second, cfg.DB.BusyTimeout)
}

func TestLoadRejectsBadLimit(t *testing.T) {
	t.Setenv("MOVIES_TOP_LIMIT", "0")
	_, err := Load("")
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoad("") })
}
