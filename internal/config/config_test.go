package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylemirror/internal/mirror"
	"stylemirror/internal/workspace"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STYLEMIRROR_WORKSPACE", dir)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("MIRROR_WEIGHT_SENTENCE", "")

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.App.DBPath)
	assert.Equal(t, mirror.DefaultWeights(), cfg.Weights)
	assert.Equal(t, 4, cfg.Rewrite.Workers)
	assert.False(t, cfg.IsProd())
}

func TestLoadOverridesFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STYLEMIRROR_WORKSPACE", dir)
	env := "LLM_PROVIDER=DeepSeek\nLLM_TIMEOUT_SECONDS=30\nMIRROR_WEIGHT_TEMPLATES=0.5\nREWRITE_WORKERS=bad\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	for _, k := range []string{"LLM_PROVIDER", "LLM_TIMEOUT_SECONDS", "MIRROR_WEIGHT_TEMPLATES", "REWRITE_WORKERS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 0.5, cfg.Weights.Templates)
	assert.Equal(t, 4, cfg.Rewrite.Workers)
}

func TestLoadFallsBackToWorkspaceSettings(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	root := filepath.Join(dir, workspace.BaseDirName)
	_, err := workspace.EnsureAt(root)
	require.NoError(t, err)
	require.NoError(t, workspace.SaveSettings(root, workspace.Settings{Provider: "DeepSeek", Model: "deepseek-chat", BaseURL: "https://api.deepseek.com/v1"}))

	t.Setenv("STYLEMIRROR_WORKSPACE", root)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_BASE_URL", "")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.LLM.BaseURL)

	t.Setenv("LLM_MODEL", "deepseek-reasoner")
	cfg, _, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "deepseek-reasoner", cfg.LLM.Model, "environment wins over settings.json")
}

func TestLoadRejectsMalformedSettings(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(workspace.SettingsPath(dir), []byte("{"), 0o644))
	t.Setenv("STYLEMIRROR_WORKSPACE", dir)

	_, _, err := Load()
	assert.Error(t, err)
}
