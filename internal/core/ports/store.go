package ports

import "go.trai.ch/pakt/internal/core/domain"

// LockfileStore defines the interface for loading and persisting lockfile
// content.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockfileStore interface {
	// Load reads the persisted lockfile content.
	// A missing lockfile yields empty content, not an error.
	Load() (*domain.LockfileContent, error)

	// Save persists the lockfile content atomically.
	Save(content *domain.LockfileContent) error

	// Fingerprint hashes the on-disk lockfile bytes, for optimistic
	// concurrency checks. A missing lockfile fingerprints to zero.
	Fingerprint() (uint64, error)
}
