// Package fslock implements the cross-process folder sync lock protecting a
// package folder during extraction.
//
// The lock is a sentinel file created inside the folder before any content
// is written and removed only after the protected action succeeds. A folder
// containing the sentinel at any later point is incomplete and must be
// treated by readers as a cache miss.
package fslock

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// SentinelName is the sync-lock sentinel file name.
const SentinelName = ".pakt-sync.lock"

// HasLock reports whether the folder still carries its sync-lock sentinel.
func HasLock(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, SentinelName))
	return err == nil
}

// WithFolderLock creates dir, drops the sentinel into it, runs action, and
// removes the sentinel on success. On any failure the entire folder is
// removed so no half-written content survives, and the original error is
// propagated.
//
// The sentinel is opened without truncation: a pre-existing sentinel from a
// crashed run stays visible rather than being silently accepted as fresh.
func WithFolderLock(nv domain.PackageVersion, dir string, action func() error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create package folder"), "path", dir)
	}

	sentinel := filepath.Join(dir, SentinelName)
	f, err := os.OpenFile(sentinel, os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // path is cache-internal
	if err != nil {
		return cleanup(nv, dir, zerr.With(zerr.Wrap(err, "failed to create sync sentinel"), "path", sentinel))
	}
	_ = f.Close() //nolint:errcheck // nothing was written

	if err := action(); err != nil {
		return cleanup(nv, dir, err)
	}

	if err := os.Remove(sentinel); err != nil {
		return cleanup(nv, dir, zerr.With(zerr.Wrap(err, "failed to remove sync sentinel"), "path", sentinel))
	}
	return nil
}

// cleanup removes the folder and returns cause. A removal failure other than
// "already gone" is escalated alongside the cause, with a hint to delete the
// folder manually.
func cleanup(nv domain.PackageVersion, dir string, cause error) error {
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		rmErr := zerr.Wrap(err, "failed to remove package folder after error")
		rmErr = zerr.With(rmErr, "package", nv.String())
		rmErr = zerr.With(rmErr, "hint", "delete the folder manually: "+dir)
		return errors.Join(cause, rmErr)
	}
	return cause
}
