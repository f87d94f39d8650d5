package core

import (
	_ "embed"
	"path/filepath"
	"strings"
)

//go:embed version.txt
var VersionRevision string

//go:embed placeholder.svg
var placeholderImage []byte

const APP_NAME = "oxi"

const (
	settingsFileName    = "oxi.json"
	catalogFileName     = "conf.json"
	placeholderFileName = "placeholder.svg"
)

func Version() string {
	return strings.TrimSpace(VersionRevision)
}

// ConfigDir is the program's configuration directory under home.
func ConfigDir(home string) string {
	return filepath.Join(home, ".config", APP_NAME)
}

func PlaceholderPath(configDir string) string {
	return filepath.Join(configDir, placeholderFileName)
}

// resolveHomePath makes p absolute by anchoring relative paths (and a
// leading "~") at home.
func resolveHomePath(home string, p string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "~":
		return home
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(home, p[2:])
	case filepath.IsAbs(p):
		return filepath.Clean(p)
	default:
		return filepath.Join(home, p)
	}
}
