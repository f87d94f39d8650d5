package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const ManifestExt = ".acf"

var ErrIncompleteManifest = errors.New("manifest is missing a required key")
var ErrInvalidManifest = errors.New("manifest is not valid")

// Manifest holds the fields of an appmanifest_<id>.acf file that the catalog
// needs.
type Manifest struct {
	AppID       uint32
	InstallPath string
	Name        string
}

// ParseManifest extracts appid, installdir and name from the manifest text.
// Keys may appear in any order and unrelated keys are ignored. When a key
// appears more than once the first occurrence wins. The install path is
// resolved to <libraryRoot>/common/<installdir>.
func ParseManifest(r io.Reader, libraryRoot string) (Manifest, error) {
	var (
		m                             Manifest
		haveID, haveInstall, haveName bool
	)

	err := ScanKeyValues(r, func(kv KeyValue) error {
		switch strings.ToLower(kv.Key) {
		case "appid":
			if haveID {
				return nil
			}
			id, err := strconv.ParseUint(strings.TrimSpace(kv.Value), 10, 32)
			if err != nil {
				return fmt.Errorf("%w: line %d: appid %q: %v", ErrInvalidManifest, kv.Line, kv.Value, err)
			}
			m.AppID = uint32(id)
			haveID = true
		case "installdir":
			if haveInstall {
				return nil
			}
			m.InstallPath = filepath.Join(libraryRoot, "common", kv.Value)
			haveInstall = true
		case "name":
			if haveName {
				return nil
			}
			m.Name = kv.Value
			haveName = true
		}
		return nil
	})
	if err != nil {
		return Manifest{}, err
	}

	var missing []string
	if !haveID {
		missing = append(missing, "appid")
	}
	if !haveInstall {
		missing = append(missing, "installdir")
	}
	if !haveName || m.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return Manifest{}, fmt.Errorf("%w: %s", ErrIncompleteManifest, strings.Join(missing, ", "))
	}

	return m, nil
}

func ParseManifestFile(path string, libraryRoot string) (Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer file.Close()

	m, err := ParseManifest(file, libraryRoot)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
