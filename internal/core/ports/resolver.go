package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// DependencyResolver is the external semver/SAT resolver, consumed as a
// black box. It owns the shared resolution snapshot; the installer reads
// the snapshot but never mutates it.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve resolves requirements against registry data, records the
	// results in the snapshot, and returns the resolved versions in input
	// order. Previously resolved requirements are answered from the
	// snapshot.
	Resolve(ctx context.Context, reqs []domain.PackageRequirement) ([]domain.PackageVersion, error)

	// ResolveUncached forces a registry metadata refresh for the given
	// requirements before resolving them.
	ResolveUncached(ctx context.Context, reqs []domain.PackageRequirement) ([]domain.PackageVersion, error)

	// Snapshot returns the shared resolution snapshot.
	Snapshot() *domain.ResolutionSnapshot
}
