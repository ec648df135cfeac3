package cache

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/adapters/fslock"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// PackagePath returns the per-name cache directory holding the version
// folders and the metadata blob.
func (c *Cache) PackagePath(name string) string {
	return filepath.Join(c.root, c.host, filepath.FromSlash(name))
}

// FolderPath returns the cache directory for one extracted instance of a
// package version.
func (c *Cache) FolderPath(id domain.CacheFolderID) string {
	return filepath.Join(c.PackagePath(id.Version.Name.String()), id.FolderName())
}

// HasValidCopy reports whether the folder for id exists and is complete. A
// folder still carrying its sync sentinel was abandoned mid-extraction and
// counts as a miss.
func (c *Cache) HasValidCopy(id domain.CacheFolderID) bool {
	dir := c.FolderPath(id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	return !fslock.HasLock(dir)
}

// ShouldUseCopy reports whether the on-disk copy for id may serve this run.
// Under a distrusting cache setting the first query per package returns
// false and records the reload.
func (c *Cache) ShouldUseCopy(id domain.CacheFolderID) bool {
	if !c.HasValidCopy(id) {
		return false
	}
	return !c.ShouldReload(id.Version)
}

// EnsureCopy makes the folder for id a valid byte-identical instance of the
// canonical copy. Copies beyond index 0 exist because peer resolution gave
// the same version distinct dependency sets per call site; they are created
// by hard-linking the canonical tree under folder-lock protection.
func (c *Cache) EnsureCopy(id domain.CacheFolderID) error {
	if c.ShouldUseCopy(id) {
		return nil
	}

	canonical := c.FolderPath(id.Canonical())
	if id.CopyIndex == 0 || !c.HasValidCopy(id.Canonical()) {
		err := zerr.With(zerr.Wrap(domain.ErrFolderIncomplete, "no canonical copy to clone from"), "package", id.Version.String())
		return zerr.With(err, "path", canonical)
	}

	dir := c.FolderPath(id)
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear stale package copy"), "path", dir)
	}
	return fslock.WithFolderLock(id.Version, dir, func() error {
		return LinkTree(canonical, dir)
	})
}

// LinkTree clones src into dst by hard-linking every file, so all copies of
// a version stay byte-identical without duplicating disk content. The sync
// sentinel is never cloned.
func LinkTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk canonical copy"), "path", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.Wrap(err, "failed to relativize path")
		}
		if rel == "." {
			return nil
		}
		if d.Name() == fslock.SentinelName {
			return nil
		}

		target := filepath.Join(dst, rel)
		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
			}
			return nil
		}
		if err := os.Link(path, target); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to hard-link file"), "path", target)
		}
		return nil
	})
}
