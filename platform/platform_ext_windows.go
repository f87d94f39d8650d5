//go:build windows

package platform

import (
	"os"
	"path/filepath"
)

// CheckAccess verifies that path exists and can be read, and written to when
// write is set.
func CheckAccess(path string, write bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		flag := os.O_RDONLY
		if write {
			flag = os.O_RDWR
		}
		f, err := os.OpenFile(path, flag, 0)
		if err != nil {
			return err
		}
		return f.Close()
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	f.Close()

	if write {
		probe, err := os.CreateTemp(path, ".oxi-access-*")
		if err != nil {
			return err
		}
		name := probe.Name()
		probe.Close()
		return os.Remove(filepath.Clean(name))
	}
	return nil
}
