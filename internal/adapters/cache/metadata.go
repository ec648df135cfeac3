package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// MetadataFileName is the per-package registry metadata blob.
const MetadataFileName = "registry.json"

// LoadPackageInfo reads the cached registry metadata for name. A missing
// file is a normal cache miss and returns (nil, nil). A malformed file
// surfaces the parse error; the caller treats it as a miss rather than
// crashing.
func (c *Cache) LoadPackageInfo(name string) (*domain.RegistryPackageData, error) {
	path := filepath.Join(c.PackagePath(name), MetadataFileName)
	raw, err := os.ReadFile(path) //nolint:gosec // path is cache-internal
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read cached registry metadata"), "path", path)
	}

	var data domain.RegistryPackageData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse cached registry metadata"), "path", path)
	}
	return &data, nil
}

// SavePackageInfo persists registry metadata for later runs via an atomic
// write-then-rename at restrictive permissions.
func (c *Cache) SavePackageInfo(data *domain.RegistryPackageData) error {
	dir := c.PackagePath(data.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create package cache folder"), "path", dir)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode registry metadata"), "package", data.Name)
	}

	path := filepath.Join(dir, MetadataFileName)
	temp := fmt.Sprintf("%s.tmp-%08x", path, rand.Uint32())
	if err := os.WriteFile(temp, raw, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write registry metadata"), "path", temp)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp) //nolint:errcheck // best effort
		return zerr.With(zerr.Wrap(err, "failed to move registry metadata into place"), "path", path)
	}
	return nil
}
