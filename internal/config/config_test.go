package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algmatch/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(home, ".config", "algmatch", "config.toml"), resolved)
	assert.Equal(t, config.Default(), *cfg)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "algmatch.toml"), []byte("[spa]\nstrategy = \"lecturer\"\n"), 0o644))

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "algmatch.toml", filepath.Base(resolved))
	assert.Equal(t, config.StrategyLecturer, cfg.SPA.Strategy)
}

func TestLoadExplicitFileNormalizes(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[spa]
strategy = " Lecturer "

[output]
format = "TEXT"

[logging]
level = "Debug"
`)
	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, config.StrategyLecturer, cfg.SPA.Strategy)
	assert.Equal(t, config.FormatText, cfg.Output.Format)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"strategy":      "[spa]\nstrategy = \"random\"\n",
		"format":        "[output]\nformat = \"json\"\n",
		"level":         "[logging]\nlevel = \"loud\"\n",
		"unknown field": "[spa]\nseed = 4\n",
		"syntax":        "[spa\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, t.TempDir(), body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
