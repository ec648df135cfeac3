package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// RegistryClient queries a package registry for metadata.
//
// Implementations return domain.ErrPackageNotFound for an unknown package or
// version; that signal is recoverable and lets a resolver try other
// candidates instead of aborting resolution outright. Transient network
// failures are reported as ordinary wrapped errors.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RegistryClient interface {
	// PackageInfo returns the full per-name metadata blob, served from the
	// local metadata cache when the cache setting trusts it.
	PackageInfo(ctx context.Context, name string) (*domain.RegistryPackageData, error)

	// RefreshPackageInfo bypasses the metadata cache and refetches.
	RefreshPackageInfo(ctx context.Context, name string) (*domain.RegistryPackageData, error)

	// PackageVersionInfo returns the metadata of one concrete version.
	PackageVersionInfo(ctx context.Context, nv domain.PackageVersion) (*domain.RegistryVersionData, error)
}

// TarballFetcher downloads package archives.
type TarballFetcher interface {
	// FetchTarball downloads the archive at the given URL.
	FetchTarball(ctx context.Context, url string) ([]byte, error)
}
