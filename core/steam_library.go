package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SteamAppsDir is the per-library subtree that holds the app manifests.
const SteamAppsDir = "steamapps"

type LibraryErrorKind int

const (
	LibraryMalformed LibraryErrorKind = iota
	LibraryNotFound
	LibraryPermission
)

func (k LibraryErrorKind) String() string {
	switch k {
	case LibraryNotFound:
		return "not found"
	case LibraryPermission:
		return "permission denied"
	default:
		return "malformed"
	}
}

// LibraryError reports why a Steam library file or directory could not be
// used.
type LibraryError struct {
	Path string
	Kind LibraryErrorKind
	Err  error
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("steam library %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

func newLibraryError(path string, err error) *LibraryError {
	kind := LibraryMalformed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = LibraryNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = LibraryPermission
	}

	return &LibraryError{Path: path, Kind: kind, Err: err}
}

// LibraryRoots reads the library folder listing at listingPath and returns
// one `<path>/steamapps` root per "path" entry, in file order.
func LibraryRoots(listingPath string) ([]string, error) {
	file, err := os.Open(listingPath)
	if err != nil {
		return nil, newLibraryError(listingPath, err)
	}
	defer file.Close()

	roots := []string{}
	err = ScanKeyValues(file, func(kv KeyValue) error {
		if !strings.EqualFold(kv.Key, "path") || strings.TrimSpace(kv.Value) == "" {
			return nil
		}

		roots = append(roots, filepath.Join(kv.Value, SteamAppsDir))
		return nil
	})
	if err != nil {
		return nil, newLibraryError(listingPath, err)
	}

	return roots, nil
}
