package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrCatalogLocked = errors.New("catalog is in use by another oxi process")

func LoadCatalog(path string) ([]Title, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var titles []Title
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	normalizeTitles(titles)
	return titles, nil
}

func StoreCatalog(path string, titles []Title) error {
	if titles == nil {
		titles = []Title{}
	}
	normalizeTitles(titles)
	return writeJSONAtomic(path, titles)
}

// normalizeTitles keeps list fields as [] rather than null on disk.
func normalizeTitles(titles []Title) {
	for i := range titles {
		if titles[i].Saves == nil {
			titles[i].Saves = []Snapshot{}
		}
		if titles[i].Artwork == nil {
			titles[i].Artwork = []string{}
		}
	}
}

// writeJSONAtomic writes v to path+".tmp" and renames it over path.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// CatalogStore holds an exclusive lock on a catalog file for the lifetime of
// one command.
type CatalogStore struct {
	path string
	lock *flock.Flock
}

func OpenCatalogStore(path string) (*CatalogStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock catalog: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrCatalogLocked)
	}

	return &CatalogStore{path: path, lock: lock}, nil
}

func (c *CatalogStore) Path() string {
	return c.path
}

func (c *CatalogStore) Load() ([]Title, error) {
	return LoadCatalog(c.path)
}

func (c *CatalogStore) Store(titles []Title) error {
	if err := StoreCatalog(c.path, titles); err != nil {
		ErrorLogger.Println(err)
		return err
	}
	InfoLogger.Printf("Wrote %d titles to %s", len(titles), c.path)
	return nil
}

func (c *CatalogStore) Close() error {
	return c.lock.Unlock()
}
