package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Load("", "")
	assert.Equal(t, filepath.Join(home, ".claude", "desktop", "conversations"), cfg.DesktopRoot)
	assert.Equal(t, filepath.Join(home, ".cursor", "sessions"), cfg.AgentRoot)
	assert.Equal(t, filepath.Join(home, ".claude", "projects"), cfg.CLIRoot)
	assert.Equal(t, filepath.Join(home, ".cursor", "chats"), cfg.DataRoot)
	assert.Equal(t, filepath.Join(home, "chat-exports"), cfg.ExportDir)
	assert.False(t, cfg.IncludeToolDetail)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.WriteFile(filepath.Join(home, ".claude-chat-manager.json"),
		[]byte(`{"dataRoot": "/data/elsewhere", "includeToolDetail": true}`), 0o644))

	cfg := Load("", "")
	assert.Equal(t, "/data/elsewhere", cfg.DataRoot)
	assert.True(t, cfg.IncludeToolDetail)
	// untouched fields keep their defaults
	assert.Equal(t, filepath.Join(home, "chat-exports"), cfg.ExportDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.WriteFile(filepath.Join(home, ".claude-chat-manager.json"),
		[]byte(`{"dataRoot": "/from/file"}`), 0o644))
	t.Setenv("CCM_DATA_ROOT", "/from/env")

	cfg := Load("", "")
	assert.Equal(t, "/from/env", cfg.DataRoot)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CCM_DATA_ROOT", "/from/env")
	t.Setenv("CCM_EXPORT_DIR", "/env/exports")

	cfg := Load("/from/flag", "/flag/exports")
	assert.Equal(t, "/from/flag", cfg.DataRoot)
	assert.Equal(t, "/flag/exports", cfg.ExportDir)
}
