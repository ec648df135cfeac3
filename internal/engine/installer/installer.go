// Package installer ties resolution, caching, and lockfile consistency
// together, de-duplicating concurrent cache work within one process.
package installer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// ImplicitTypesPackage is injected into every top-level resolution so
// ambient platform type definitions are always available.
const ImplicitTypesPackage = "@types/node"

// Installer orchestrates requirement resolution and cache population. It may
// be invoked concurrently by several in-process workers; the single-slot
// queue totally orders cache-population critical sections within this
// process. Cross-process safety comes from the folder lock and the atomic
// rename inside extraction, not from here.
type Installer struct {
	resolver ports.DependencyResolver
	fs       ports.FsInstaller
	logger   ports.Logger

	// queue has exactly one slot: caching is asynchronous and must not run
	// twice concurrently for overlapping requirement sets.
	queue *semaphore.Weighted

	store       ports.LockfileStore
	fingerprint uint64

	mu     sync.Mutex
	cached map[domain.PackageVersion]struct{}

	topLevelDone atomic.Bool

	// TopLevelRequirements are the declared remote dependencies used by
	// EnsureTopLevelInstall.
	TopLevelRequirements []domain.PackageRequirement
}

// New creates an Installer. The cached set is scoped to this instance so
// separate instances (e.g. in tests) never interfere.
func New(resolver ports.DependencyResolver, fs ports.FsInstaller, logger ports.Logger) *Installer {
	return &Installer{
		resolver: resolver,
		fs:       fs,
		logger:   logger,
		queue:    semaphore.NewWeighted(1),
		cached:   make(map[domain.PackageVersion]struct{}),
	}
}

// AttachLockfile binds a lockfile store and records the current content
// fingerprint as the baseline for the optimistic concurrency check.
func (i *Installer) AttachLockfile(store ports.LockfileStore) error {
	fp, err := store.Fingerprint()
	if err != nil {
		return err
	}
	i.store = store
	i.fingerprint = fp
	return nil
}

// RefreshBaseline re-reads the lockfile fingerprint, to be called after this
// process itself persisted new content.
func (i *Installer) RefreshBaseline() error {
	if i.store == nil {
		return nil
	}
	fp, err := i.store.Fingerprint()
	if err != nil {
		return err
	}
	i.fingerprint = fp
	return nil
}

// AddRequirements resolves requirements and, when caching is requested,
// populates the cache for the resulting packages. On a lockfile conflict the
// call fails without mutating anything.
func (i *Installer) AddRequirements(ctx context.Context, reqs []domain.PackageRequirement, caching bool) error {
	if len(reqs) == 0 {
		return nil
	}

	versions, err := i.resolver.Resolve(ctx, reqs)
	if err != nil {
		return err
	}

	if err := i.checkLockfileUnchanged(); err != nil {
		return err
	}

	if !caching {
		return nil
	}
	return i.CachePackages(ctx, versions)
}

// AddAndCacheRequirements resolves requirements and caches the resulting
// packages.
func (i *Installer) AddAndCacheRequirements(ctx context.Context, reqs []domain.PackageRequirement) error {
	return i.AddRequirements(ctx, reqs, true)
}

// CachePackages ensures every listed package has a complete on-disk copy,
// delegating to the filesystem installer for the subset not already
// confirmed cached by this instance. Packages are marked cached only after
// the filesystem step reports success.
func (i *Installer) CachePackages(ctx context.Context, pkgs []domain.PackageVersion) error {
	if len(pkgs) == 0 {
		return nil
	}

	if err := i.queue.Acquire(ctx, 1); err != nil {
		return zerr.Wrap(err, "failed to acquire install queue")
	}
	defer i.queue.Release(1)

	pending := i.pendingPackages(pkgs)
	if len(pending) == 0 {
		return nil
	}
	i.logger.Info(fmt.Sprintf("caching %d package(s)", len(pending)))

	if err := i.fs.CachePackages(ctx, pending); err != nil {
		return err
	}
	i.markCached(pending)
	return nil
}

// EnsureTopLevelInstall resolves the declared top-level requirements once
// per process. When every declared requirement is already resolvable in the
// current snapshot the expensive metadata refresh is skipped.
func (i *Installer) EnsureTopLevelInstall(ctx context.Context) error {
	if !i.topLevelDone.CompareAndSwap(false, true) {
		return nil
	}

	snapshot := i.resolver.Snapshot()
	allResolved := true
	for _, req := range i.TopLevelRequirements {
		if _, ok := snapshot.Lookup(req); !ok {
			allResolved = false
			break
		}
	}
	if allResolved {
		return nil
	}

	_, err := i.resolver.ResolveUncached(ctx, i.TopLevelRequirements)
	return err
}

// InjectImplicitTypesPackage adds the ambient type-definitions package as an
// implicit dependency, unless the top-level resolution already carries it
// under any requirement.
func (i *Installer) InjectImplicitTypesPackage(ctx context.Context) error {
	name := domain.NewInternedString(ImplicitTypesPackage)
	if i.resolver.Snapshot().HasPackage(domain.KindRegistry, name) {
		return nil
	}
	req := domain.NewRequirement(domain.KindRegistry, ImplicitTypesPackage, "*")
	return i.AddRequirements(ctx, []domain.PackageRequirement{req}, false)
}

// checkLockfileUnchanged re-validates that the lockfile content has not
// changed underneath this call.
func (i *Installer) checkLockfileUnchanged() error {
	if i.store == nil {
		return nil
	}
	fp, err := i.store.Fingerprint()
	if err != nil {
		return err
	}
	if fp != i.fingerprint {
		return zerr.With(zerr.Wrap(domain.ErrLockfileChanged, "lockfile fingerprint drifted"), "expected", i.fingerprint)
	}
	return nil
}

// pendingPackages returns the subset of pkgs not already confirmed cached,
// de-duplicated, preserving input order.
func (i *Installer) pendingPackages(pkgs []domain.PackageVersion) []domain.PackageVersion {
	i.mu.Lock()
	defer i.mu.Unlock()

	seen := make(map[domain.PackageVersion]struct{}, len(pkgs))
	pending := make([]domain.PackageVersion, 0, len(pkgs))
	for _, nv := range pkgs {
		if _, done := i.cached[nv]; done {
			continue
		}
		if _, dup := seen[nv]; dup {
			continue
		}
		seen[nv] = struct{}{}
		pending = append(pending, nv)
	}
	return pending
}

func (i *Installer) markCached(pkgs []domain.PackageVersion) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, nv := range pkgs {
		i.cached[nv] = struct{}{}
	}
}
