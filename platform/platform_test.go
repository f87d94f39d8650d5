package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAccess(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "save.dat")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0o644))

	assert.NoError(t, CheckAccess(dir, false))
	assert.NoError(t, CheckAccess(dir, true))
	assert.NoError(t, CheckAccess(file, false))
	assert.NoError(t, CheckAccess(file, true))

	assert.ErrorIs(t, CheckAccess(filepath.Join(dir, "missing"), false), fs.ErrNotExist)
}

func TestCheckAccessDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	err := CheckAccess(locked, false)
	var pathErr *os.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "access", pathErr.Op)
	assert.ErrorIs(t, err, fs.ErrPermission)
}
