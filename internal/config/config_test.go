package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "a missing config file falls back to defaults")

	assert.Equal(t, "raw-data", cfg.App.SourceDir)
	assert.Equal(t, "output", cfg.App.OutputDir)
	assert.Equal(t, "百惠行对账单", cfg.Company.Name)
	assert.Equal(t, "东莞市黄江镇华南塑胶城区132号", cfg.Company.Address)
	assert.Equal(t, 8391, cfg.Server.Port)
	assert.True(t, cfg.Server.OpenBrowser)
	assert.Empty(t, cfg.Database.Path, "run history is off by default")
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  source_dir: /data/orders
company:
  name: 测试公司
server:
  port: 9000
  open_browser: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/orders", cfg.App.SourceDir)
	assert.Equal(t, "测试公司", cfg.Company.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Server.OpenBrowser)
	// Values absent from the file keep their defaults.
	assert.Equal(t, "output", cfg.App.OutputDir)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STATEMENTS_SOURCE_DIR", "/env/orders")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/orders", cfg.App.SourceDir)
}
