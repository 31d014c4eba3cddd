package manager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/fileman/internal/manager"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	require.NoError(t, err)

	require.Equal(t, "auto", cfg.Color)
	require.Equal(t, dir, cfg.EffectiveCwd)
	require.Equal(t, dir, cfg.RootDir)
	require.Empty(t, cfg.HistoryFileAbs, "no HOME means no history file")
	require.Empty(t, cfg.Sources.Global)
	require.Empty(t, cfg.Sources.Project)
}

func TestLoadConfig_HistoryDefaultsToHome(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()

	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, manager.HistoryFileName), cfg.HistoryFileAbs)
}

func TestLoadConfig_ProjectFileWithComments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))

	// JWCC: comments and trailing commas are allowed.
	writeConfig(t, filepath.Join(dir, manager.ConfigFileName), `{
		// where fm starts
		"start_dir": "docs",
		"color": "never",
	}`)

	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	require.NoError(t, err)

	require.Equal(t, "never", cfg.Color)
	require.Equal(t, filepath.Join(dir, "docs"), cfg.RootDir)
	require.Equal(t, filepath.Join(dir, manager.ConfigFileName), cfg.Sources.Project)
}

func TestLoadConfig_GlobalConfigViaXDG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeConfig(t, filepath.Join(xdg, "fm", "config.json"), `{"color": "always"}`)

	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
	})
	require.NoError(t, err)

	require.Equal(t, "always", cfg.Color)
	require.Equal(t, filepath.Join(xdg, "fm", "config.json"), cfg.Sources.Global)
}

func TestLoadConfig_ProjectOverridesGlobal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeConfig(t, filepath.Join(xdg, "fm", "config.json"), `{"color": "always"}`)
	writeConfig(t, filepath.Join(dir, manager.ConfigFileName), `{"color": "never"}`)

	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
	})
	require.NoError(t, err)

	require.Equal(t, "never", cfg.Color)
}

func TestLoadConfig_ExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		ConfigPath:      "missing.json",
		Env:             map[string]string{},
	})

	require.ErrorIs(t, err, manager.ErrConfigFileNotFound)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeConfig(t, filepath.Join(dir, manager.ConfigFileName), `{"color": `)

	_, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})

	require.ErrorIs(t, err, manager.ErrConfigInvalid)
}

func TestLoadConfig_InvalidColorMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeConfig(t, filepath.Join(dir, manager.ConfigFileName), `{"color": "sometimes"}`)

	_, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})

	require.ErrorIs(t, err, manager.ErrInvalidColorMode)
}

func TestLoadConfig_RelativeHistoryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeConfig(t, filepath.Join(dir, manager.ConfigFileName), `{"history_file": ".history"}`)

	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, ".history"), cfg.HistoryFileAbs)
}
