package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrNoSettings = errors.New("settings file has no entries")

// Settings is the first entry of the oxi.json settings array.
type Settings struct {
	SaveBasePath    string `json:"save_base_path"`
	GameConfPath    string `json:"game_conf_path"`
	ColorScheme     string `json:"color_scheme"`
	DeleteOnRestore bool   `json:"delete_on_restore"`
}

func DefaultSettings() Settings {
	return Settings{
		SaveBasePath:    "Documents/Saves",
		GameConfPath:    ".config/oxi/",
		ColorScheme:     "dark",
		DeleteOnRestore: true,
	}
}

func SettingsPath(home string) string {
	return filepath.Join(ConfigDir(home), settingsFileName)
}

// SnapshotRoot is the directory snapshots are stored under.
func (s Settings) SnapshotRoot(home string) string {
	return resolveHomePath(home, s.SaveBasePath)
}

// CatalogPath is the location of the title catalog.
func (s Settings) CatalogPath(home string) string {
	return filepath.Join(resolveHomePath(home, s.GameConfPath), catalogFileName)
}

func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var entries []Settings
	if err := json.Unmarshal(data, &entries); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if len(entries) == 0 {
		return Settings{}, fmt.Errorf("%s: %w", path, ErrNoSettings)
	}

	return entries[0], nil
}

func WriteSettings(path string, s Settings) error {
	return writeJSONAtomic(path, []Settings{s})
}

// InitConfig creates the configuration directory under home with default
// settings, an empty catalog and the placeholder artwork. Files that already
// exist are left alone. The paths of created files are returned.
func InitConfig(home string) ([]string, error) {
	configDir := ConfigDir(home)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, err
	}

	created := []string{}
	settingsPath := SettingsPath(home)
	settings := DefaultSettings()
	if ok, err := missing(settingsPath); err != nil {
		return created, err
	} else if ok {
		if err := WriteSettings(settingsPath, settings); err != nil {
			return created, err
		}
		created = append(created, settingsPath)
	} else if settings, err = LoadSettings(settingsPath); err != nil {
		return created, err
	}

	catalogPath := settings.CatalogPath(home)
	if ok, err := missing(catalogPath); err != nil {
		return created, err
	} else if ok {
		if err := os.MkdirAll(filepath.Dir(catalogPath), 0o755); err != nil {
			return created, err
		}
		if err := StoreCatalog(catalogPath, []Title{}); err != nil {
			return created, err
		}
		created = append(created, catalogPath)
	}

	placeholder := PlaceholderPath(configDir)
	if ok, err := missing(placeholder); err != nil {
		return created, err
	} else if ok {
		if err := os.WriteFile(placeholder, placeholderImage, 0o644); err != nil {
			return created, err
		}
		created = append(created, placeholder)
	}

	for _, path := range created {
		InfoLogger.Println("Created", path)
	}
	return created, nil
}

func missing(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, err
}
