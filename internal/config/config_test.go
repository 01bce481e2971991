package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Server.Addr, cfg.Server.Addr)
	assert.Equal(t, def.AI.Model, cfg.AI.Model)
	assert.Equal(t, 7, cfg.Stats.WindowDays)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
db:
  path: /tmp/from-file.db
log:
  level: debug
server:
  addr: ":9090"
stats:
  window_days: 14
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	t.Setenv("HS_SERVER_ADDR", ":7070")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-file.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 14, cfg.Stats.WindowDays)
	assert.Equal(t, "gem-key", cfg.AI.APIKey)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
