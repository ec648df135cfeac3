// Package fsinstall implements the filesystem installers: global mode
// populates the machine-wide hard-link cache, local mode additionally
// materializes packages into a project folder.
package fsinstall

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/pakt/internal/adapters/cache"
	"go.trai.ch/pakt/internal/adapters/tarball"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// fetchParallelism bounds concurrent downloads per CachePackages call.
const fetchParallelism = 8

// Registry bundles the access paths to one registry: metadata client,
// tarball fetcher, and the on-disk cache keyed by that registry's host.
type Registry struct {
	Client  ports.RegistryClient
	Fetcher ports.TarballFetcher
	Cache   *cache.Cache
}

// GlobalInstaller implements ports.FsInstaller by populating the global
// package cache. Packages already present with a complete, trusted copy are
// skipped.
type GlobalInstaller struct {
	npm       Registry
	jsr       Registry
	snapshot  *domain.ResolutionSnapshot
	extractor *tarball.Extractor
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewGlobalInstaller creates a GlobalInstaller. The snapshot is consulted to
// route each package to the registry it was resolved from.
func NewGlobalInstaller(npm, jsr Registry, snapshot *domain.ResolutionSnapshot, extractor *tarball.Extractor, telemetry ports.Telemetry, logger ports.Logger) *GlobalInstaller {
	return &GlobalInstaller{
		npm:       npm,
		jsr:       jsr,
		snapshot:  snapshot,
		extractor: extractor,
		telemetry: telemetry,
		logger:    logger,
	}
}

// CachePackages ensures every listed package has a complete,
// integrity-verified copy in the global cache. Work is per-package parallel;
// cross-process races are healed by the atomic sibling rename.
func (g *GlobalInstaller) CachePackages(ctx context.Context, pkgs []domain.PackageVersion) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(fetchParallelism)
	for _, nv := range pkgs {
		grp.Go(func() error {
			return g.cachePackage(ctx, nv)
		})
	}
	return grp.Wait()
}

// FolderPath returns the global cache folder holding nv's canonical copy.
func (g *GlobalInstaller) FolderPath(nv domain.PackageVersion) string {
	return g.registryFor(nv).Cache.FolderPath(domain.CacheFolderID{Version: nv})
}

// VersionInfo returns the registry metadata of one concrete version, routed
// to the registry nv was resolved from.
func (g *GlobalInstaller) VersionInfo(ctx context.Context, nv domain.PackageVersion) (*domain.RegistryVersionData, error) {
	reg := g.registryFor(nv)
	return reg.Client.PackageVersionInfo(ctx, g.queryVersion(nv))
}

func (g *GlobalInstaller) cachePackage(ctx context.Context, nv domain.PackageVersion) (err error) {
	ctx, vtx := g.telemetry.Record(ctx, "cache "+nv.String())
	defer func() {
		if err != nil {
			vtx.Complete(err)
		}
	}()

	reg := g.registryFor(nv)
	id := domain.CacheFolderID{Version: nv}
	if reg.Cache.HasValidCopy(id) && !reg.Cache.ShouldReload(nv) {
		vtx.Cached()
		return nil
	}

	version, err := reg.Client.PackageVersionInfo(ctx, g.queryVersion(nv))
	if err != nil {
		return err
	}
	if version.Dist.Tarball == "" {
		return zerr.With(zerr.New("registry metadata carries no tarball url"), "package", nv.String())
	}
	if version.Deprecated != "" {
		g.logger.Warn(nv.String() + " is deprecated: " + version.Deprecated)
	}

	data, err := reg.Fetcher.FetchTarball(ctx, version.Dist.Tarball)
	if err != nil {
		return err
	}

	dir := reg.Cache.FolderPath(id)
	if err := g.extractor.VerifyAndExtract(nv, data, version.Dist, dir, tarball.ModeAtomicSibling); err != nil {
		return err
	}
	if version.HasInstallScript() {
		vtx.Log(domain.LogLevelWarn, nv.String()+" declares lifecycle scripts; not run for the global cache")
	}

	vtx.Complete(nil)
	return nil
}

// registryFor routes a package to the registry it was resolved from. Names
// already in the npm-compatibility scheme ("@jsr/...") belong to the JSR
// registry; anything else unknown to the snapshot defaults to the semver
// registry.
func (g *GlobalInstaller) registryFor(nv domain.PackageVersion) Registry {
	if strings.HasPrefix(nv.Name.String(), "@jsr/") {
		return g.jsr
	}
	if g.snapshot != nil && g.snapshot.HasPackage(domain.KindJsr, nv.Name) {
		return g.jsr
	}
	return g.npm
}

// queryVersion maps a package onto the name its registry serves it under.
// JSR packages are queried through the npm-compatibility scheme.
func (g *GlobalInstaller) queryVersion(nv domain.PackageVersion) domain.PackageVersion {
	if g.snapshot != nil && g.snapshot.HasPackage(domain.KindJsr, nv.Name) {
		return domain.NewPackageVersion(domain.JsrCompatName(nv.Name.String()), nv.Version)
	}
	return nv
}
