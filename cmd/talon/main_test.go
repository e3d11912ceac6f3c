package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glo0ml34f/talon/internal/config"
	"github.com/glo0ml34f/talon/internal/plugin"
)

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("TALON_MODE", "")
	t.Setenv("TALON_PLUGINS", "")
	opts := &options{
		configPath: filepath.Join(t.TempDir(), "missing.yaml"),
		plain:      true,
		pluginsDir: "/opt/plugins",
	}
	cfg, err := loadConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, config.ModePlain, cfg.Mode)
	assert.Equal(t, "/opt/plugins", cfg.PluginsDir)
}

func TestBuildRegistryWithPlugins(t *testing.T) {
	dir := t.TempDir()
	code := `
function init(h)
  plugin.register(h, '{"name":"extra","version":"1"}')
  plugin.command(h, "/help", "Shadow help", "f")
  plugin.command(h, "/motd", "Message of the day", "f")
end
function f(state) return {"hi"} end
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.lua"), []byte(code), 0o600))

	m := plugin.NewManager(nil)
	defer m.Shutdown()
	require.NoError(t, m.LoadAll(dir))

	reg, err := buildRegistry(m)
	require.NoError(t, err)
	assert.Equal(t, 9, reg.Len())

	help, ok := reg.Resolve("/help")
	require.True(t, ok)
	assert.Equal(t, "Show this help message", help.Describe)
	_, ok = reg.Resolve("/MOTD")
	assert.True(t, ok)
}
