// Package resolve implements a naive highest-satisfying-version resolver
// over registry metadata. The full SAT resolver stays an external
// collaborator behind ports.DependencyResolver; this adapter keeps the
// binary usable end-to-end.
package resolve

import (
	"context"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.DependencyResolver.
type Resolver struct {
	registry ports.RegistryClient
	jsr      ports.RegistryClient
	snapshot *domain.ResolutionSnapshot
	logger   ports.Logger
}

// NewResolver creates a Resolver querying the given registry clients.
func NewResolver(registry, jsr ports.RegistryClient, logger ports.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		jsr:      jsr,
		snapshot: domain.NewResolutionSnapshot(),
		logger:   logger,
	}
}

// Snapshot returns the shared resolution snapshot.
func (r *Resolver) Snapshot() *domain.ResolutionSnapshot {
	return r.snapshot
}

// Resolve resolves requirements in input order, answering previously
// resolved requirements from the snapshot.
func (r *Resolver) Resolve(ctx context.Context, reqs []domain.PackageRequirement) ([]domain.PackageVersion, error) {
	return r.resolve(ctx, reqs, false)
}

// ResolveUncached forces a registry metadata refresh before resolving.
func (r *Resolver) ResolveUncached(ctx context.Context, reqs []domain.PackageRequirement) ([]domain.PackageVersion, error) {
	return r.resolve(ctx, reqs, true)
}

func (r *Resolver) resolve(ctx context.Context, reqs []domain.PackageRequirement, refresh bool) ([]domain.PackageVersion, error) {
	resolved := make([]domain.PackageVersion, 0, len(reqs))
	for _, req := range reqs {
		if !refresh {
			if nv, ok := r.snapshot.Lookup(req); ok {
				resolved = append(resolved, nv)
				continue
			}
		}

		nv, err := r.resolveOne(ctx, req, refresh)
		if err != nil {
			return nil, err
		}
		r.snapshot.Record(req, nv)
		resolved = append(resolved, nv)
	}
	return resolved, nil
}

func (r *Resolver) resolveOne(ctx context.Context, req domain.PackageRequirement, refresh bool) (domain.PackageVersion, error) {
	client, queryName := r.clientFor(req)

	var info *domain.RegistryPackageData
	var err error
	if refresh {
		info, err = client.RefreshPackageInfo(ctx, queryName)
	} else {
		info, err = client.PackageInfo(ctx, queryName)
	}
	if err != nil {
		return domain.PackageVersion{}, err
	}

	version, ok := pickVersion(info, req.Constraint)
	if !ok {
		notFound := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "no version satisfies constraint"), "package", req.Name.String())
		return domain.PackageVersion{}, zerr.With(notFound, "constraint", req.Constraint)
	}
	return domain.NewPackageVersion(req.Name.String(), version), nil
}

// clientFor picks the registry for a requirement. JSR packages are queried
// through the JSR registry's npm-compatibility endpoint, which serves
// "@scope/name" under "@jsr/scope__name". Requirements already written in
// the compat form (transitive dependencies of JSR packages) go to the same
// endpoint without renaming.
func (r *Resolver) clientFor(req domain.PackageRequirement) (ports.RegistryClient, string) {
	name := req.Name.String()
	if req.Kind == domain.KindJsr {
		return r.jsr, domain.JsrCompatName(name)
	}
	if strings.HasPrefix(name, "@jsr/") {
		return r.jsr, name
	}
	return r.registry, name
}

// pickVersion selects the highest version satisfying the constraint. A
// constraint naming a dist-tag resolves through the tag table.
func pickVersion(info *domain.RegistryPackageData, constraint string) (string, bool) {
	if tagged, ok := info.DistTags[constraint]; ok {
		_, present := info.Versions[tagged]
		return tagged, present
	}
	if constraint == "" || constraint == "*" {
		if tagged, ok := info.DistTags["latest"]; ok {
			if _, present := info.Versions[tagged]; present {
				return tagged, true
			}
		}
	}

	best := ""
	for version := range info.Versions {
		if !matchesConstraint(constraint, version) {
			continue
		}
		if best == "" || compareVersions(version, best) > 0 {
			best = version
		}
	}
	return best, best != ""
}
