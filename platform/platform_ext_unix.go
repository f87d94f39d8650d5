//go:build unix

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckAccess verifies that path exists and can be read, and written to when
// write is set. Directories also need search permission.
func CheckAccess(path string, write bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := uint32(unix.R_OK)
	if write {
		mode |= unix.W_OK
	}
	if info.IsDir() {
		mode |= unix.X_OK
	}

	if err := unix.Access(path, mode); err != nil {
		return &os.PathError{Op: "access", Path: path, Err: fmt.Errorf("insufficient permissions: %w", err)}
	}
	return nil
}
