package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// FsInstaller materializes a set of resolved packages onto disk. Both
// provided modes satisfy the same contract: after CachePackages returns nil,
// every listed package has a complete, integrity-verified on-disk copy.
//
// The global mode populates the machine-wide hard-link cache; the local mode
// additionally links packages into a project folder.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type FsInstaller interface {
	CachePackages(ctx context.Context, pkgs []domain.PackageVersion) error
}
