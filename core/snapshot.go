package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	cp "github.com/otiai10/copy"

	"oxi/platform"
)

// ErrBackupInsideSource is returned when the backup and production trees
// overlap, which would make the copy walk into its own output.
var ErrBackupInsideSource = errors.New("backup and production paths overlap")

// CopyError is returned when a backup or restore copy fails. Err is the
// underlying I/O cause.
type CopyError struct {
	Op    string
	Title string
	Count uint32
	Err   error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to %s %s snapshot %d: %v", e.Op, e.Title, e.Count, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

type CopyReport struct {
	Files   int
	Bytes   uint64
	Elapsed time.Duration
	// SafetyPath is the retained copy of the pre-restore production data, if
	// one was kept.
	SafetyPath string
}

func (r CopyReport) String() string {
	return fmt.Sprintf("%d files, %s in %s", r.Files, humanize.Bytes(r.Bytes), r.Elapsed.Round(time.Millisecond))
}

type RestoreOptions struct {
	// DeleteSafetyCopy removes the pre-restore copy of the production data
	// once the restore succeeded.
	DeleteSafetyCopy bool
}

func copyOptions() cp.Options {
	return cp.Options{
		OnSymlink:     func(string) cp.SymlinkAction { return cp.Shallow },
		Skip:          replaceExistingSymlink,
		PreserveTimes: true,
	}
}

// replaceExistingSymlink clears dest before a symlink is copied over it, as
// creating a symlink never overwrites.
func replaceExistingSymlink(srcinfo os.FileInfo, src, dest string) (bool, error) {
	if srcinfo.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}

	if _, err := os.Lstat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Backup copies the snapshot's production tree into its backup path as
// <backup path>/<production dir name>, overwriting what is already there.
func Backup(s Snapshot) (CopyReport, error) {
	start := time.Now()
	fail := func(err error) (CopyReport, error) {
		return CopyReport{}, &CopyError{Op: "back up", Title: s.ParentGame, Count: s.Count, Err: err}
	}

	if s.ProductionPath == "" {
		return fail(ErrNoProductionPath)
	}
	if err := checkDisjoint(s.ProductionPath, s.BackupPath); err != nil {
		return fail(err)
	}
	if err := platform.CheckAccess(s.ProductionPath, false); err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(s.BackupPath, 0o755); err != nil {
		return fail(err)
	}

	dest := filepath.Join(s.BackupPath, filepath.Base(filepath.Clean(s.ProductionPath)))
	if err := cp.Copy(s.ProductionPath, dest, copyOptions()); err != nil {
		return fail(err)
	}

	report, err := measure(dest)
	if err != nil {
		return fail(err)
	}
	report.Elapsed = time.Since(start)

	InfoLogger.Printf("Successfully backed up %s (snapshot %d) in %s", s.ParentGame, s.Count, report)
	return report, nil
}

// Restore copies the contents of the snapshot's backup path into the parent
// of its production path, overwriting existing files. The current production
// tree is copied to a temporary directory first and copied back if the
// restore fails part way.
func Restore(s Snapshot, opts RestoreOptions) (CopyReport, error) {
	start := time.Now()
	fail := func(err error) (CopyReport, error) {
		return CopyReport{}, &CopyError{Op: "restore", Title: s.ParentGame, Count: s.Count, Err: err}
	}

	if s.ProductionPath == "" {
		return fail(ErrNoProductionPath)
	}
	production := filepath.Clean(s.ProductionPath)
	parent := filepath.Dir(production)

	if err := checkDisjoint(production, s.BackupPath); err != nil {
		return fail(err)
	}
	if err := platform.CheckAccess(s.BackupPath, false); err != nil {
		return fail(err)
	}
	entries, err := os.ReadDir(s.BackupPath)
	if err != nil {
		return fail(err)
	}

	safety, err := copyToSafety(production)
	if err != nil {
		return fail(fmt.Errorf("safety copy: %w", err))
	}

	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fail(err)
	}

	copyOpts := copyOptions()
	for _, entry := range entries {
		src := filepath.Join(s.BackupPath, entry.Name())
		if err := cp.Copy(src, filepath.Join(parent, entry.Name()), copyOpts); err != nil {
			if safety != "" {
				ErrorLogger.Printf("Restore of %s failed, rolling back from %s", s.ParentGame, safety)
				if rbErr := rollback(safety, production); rbErr != nil {
					err = errors.Join(err, fmt.Errorf("rollback from %s: %w", safety, rbErr))
				}
			}
			return fail(err)
		}
	}

	report, err := measure(s.BackupPath)
	if err != nil {
		return fail(err)
	}
	report.Elapsed = time.Since(start)

	if safety != "" {
		if opts.DeleteSafetyCopy {
			if err := os.RemoveAll(safety); err != nil {
				ErrorLogger.Printf("Could not remove safety copy %s: %v", safety, err)
				report.SafetyPath = safety
			}
		} else {
			report.SafetyPath = safety
		}
	}

	InfoLogger.Printf("Successfully restored %s (snapshot %d) in %s", s.ParentGame, s.Count, report)
	return report, nil
}

// copyToSafety copies production into a fresh temporary directory and
// returns that directory. Nothing is copied when production does not exist.
func copyToSafety(production string) (string, error) {
	if _, err := os.Lstat(production); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	dir, err := os.MkdirTemp("", "oxi-restore-*")
	if err != nil {
		return "", err
	}

	if err := cp.Copy(production, filepath.Join(dir, filepath.Base(production)), copyOptions()); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}

// rollback replaces production with the copy held in safety.
func rollback(safety string, production string) error {
	if err := os.RemoveAll(production); err != nil {
		return err
	}
	return cp.Copy(filepath.Join(safety, filepath.Base(production)), production, copyOptions())
}

// checkDisjoint fails when either path is the other or lies below it.
func checkDisjoint(production string, backup string) error {
	p, err := filepath.Abs(production)
	if err != nil {
		return err
	}
	b, err := filepath.Abs(backup)
	if err != nil {
		return err
	}

	if within(p, b) || within(b, p) {
		return fmt.Errorf("%s and %s: %w", p, b, ErrBackupInsideSource)
	}
	return nil
}

// within reports whether path is root or below it. Both must be absolute.
func within(root string, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func measure(root string) (CopyReport, error) {
	var report CopyReport
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		report.Files++
		report.Bytes += uint64(info.Size())
		return nil
	})
	return report, err
}
