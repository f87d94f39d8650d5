package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxi.json")
	writeFile(t, path, `[
  {
    "save_base_path": "Documents/Saves",
    "game_conf_path": ".config/oxi/",
    "color_scheme": "light",
    "delete_on_restore": false
  },
  {
    "save_base_path": "ignored"
  }
]`)

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{
		SaveBasePath:    "Documents/Saves",
		GameConfPath:    ".config/oxi/",
		ColorScheme:     "light",
		DeleteOnRestore: false,
	}, settings)
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	writeFile(t, empty, "[]")
	_, err := LoadSettings(empty)
	assert.ErrorIs(t, err, ErrNoSettings)

	_, err = LoadSettings(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, "[{")
	_, err = LoadSettings(broken)
	assert.ErrorContains(t, err, "parse settings")
}

func TestSettingsPaths(t *testing.T) {
	home := "/home/deck"

	defaults := DefaultSettings()
	assert.Equal(t, "/home/deck/Documents/Saves", defaults.SnapshotRoot(home))
	assert.Equal(t, "/home/deck/.config/oxi/conf.json", defaults.CatalogPath(home))
	assert.Equal(t, "/home/deck/.config/oxi/oxi.json", SettingsPath(home))

	custom := Settings{SaveBasePath: "/mnt/backups/", GameConfPath: "~/games"}
	assert.Equal(t, "/mnt/backups", custom.SnapshotRoot(home))
	assert.Equal(t, "/home/deck/games/conf.json", custom.CatalogPath(home))

	assert.Equal(t, home, Settings{SaveBasePath: "~"}.SnapshotRoot(home))
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()

	created, err := InitConfig(home)
	require.NoError(t, err)
	assert.Equal(t, []string{
		SettingsPath(home),
		filepath.Join(home, ".config", "oxi", "conf.json"),
		filepath.Join(home, ".config", "oxi", "placeholder.svg"),
	}, created)

	settings, err := LoadSettings(SettingsPath(home))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	titles, err := LoadCatalog(settings.CatalogPath(home))
	require.NoError(t, err)
	assert.Empty(t, titles)

	placeholder, err := os.ReadFile(PlaceholderPath(ConfigDir(home)))
	require.NoError(t, err)
	assert.Equal(t, placeholderImage, placeholder)

	created, err = InitConfig(home)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestInitConfigKeepsExistingSettings(t *testing.T) {
	home := t.TempDir()
	custom := Settings{SaveBasePath: "Backups", GameConfPath: "catalogs", ColorScheme: "none"}
	require.NoError(t, os.MkdirAll(ConfigDir(home), 0o755))
	require.NoError(t, WriteSettings(SettingsPath(home), custom))

	created, err := InitConfig(home)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(home, "catalogs", "conf.json"),
		filepath.Join(home, ".config", "oxi", "placeholder.svg"),
	}, created)

	settings, err := LoadSettings(SettingsPath(home))
	require.NoError(t, err)
	assert.Equal(t, custom, settings)
}
