// Package lockfileio persists the lockfile content as a flat JSON file.
package lockfileio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockfileStore using a flat JSON file.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a LockfileStore backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load reads and parses the lockfile. A missing or empty file yields fresh
// empty content, so a project without a lockfile starts from a clean graph.
func (s *Store) Load() (*domain.LockfileContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return domain.NewLockfileContent(), nil
	}

	content := domain.NewLockfileContent()
	if err := json.Unmarshal(data, content); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", s.path)
	}
	return content, nil
}

// Save writes the content back via an atomic write-then-rename, so a crash
// mid-save never leaves a truncated lockfile behind.
func (s *Store) Save(content *domain.LockfileContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode lockfile")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create lockfile directory"), "path", dir)
	}

	temp := fmt.Sprintf("%s.tmp-%08x", s.path, rand.Uint32())
	if err := os.WriteFile(temp, data, 0o644); err != nil { //nolint:gosec // lockfiles are project files
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", temp)
	}
	if err := os.Rename(temp, s.path); err != nil {
		_ = os.Remove(temp) //nolint:errcheck // best effort
		return zerr.With(zerr.Wrap(err, "failed to move lockfile into place"), "path", s.path)
	}
	return nil
}

// Fingerprint hashes the current on-disk lockfile bytes for the optimistic
// concurrency check. A missing file fingerprints to zero.
func (s *Store) Fingerprint() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.read()
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	return xxhash.Sum64(data), nil
}

func (s *Store) read() ([]byte, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", s.path)
	}
	return data, nil
}
