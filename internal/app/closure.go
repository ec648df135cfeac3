package app

import (
	"context"
	"fmt"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolveClosure resolves the transitive dependency closure of the given
// root requirements and records every resolved package in the graph: roots
// into the specifiers map, package bodies with their dependency edges into
// the per-ecosystem arenas. It returns every package in the closure, roots
// first, in discovery order.
func (a *App) resolveClosure(ctx context.Context, c *Components, roots []domain.PackageRequirement) ([]domain.PackageVersion, error) {
	if len(roots) == 0 {
		return nil, nil
	}

	versions, err := c.Resolver.Resolve(ctx, roots)
	if err != nil {
		return nil, err
	}
	for i, req := range roots {
		c.Graph.AddRoot(req, identityFor(req.Kind, versions[i]))
	}

	visited := make(map[domain.PackageVersion]struct{})
	order := make([]domain.PackageVersion, 0, len(versions))
	queue := append([]domain.PackageVersion(nil), versions...)

	for len(queue) > 0 {
		nv := queue[0]
		queue = queue[1:]
		if _, seen := visited[nv]; seen {
			continue
		}
		visited[nv] = struct{}{}
		order = append(order, nv)

		children, err := a.recordPackage(ctx, c, nv)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}
	return order, nil
}

// recordPackage fetches one package's version metadata, resolves its direct
// dependencies, stores its body in the graph, and returns the resolved
// children for further traversal.
func (a *App) recordPackage(ctx context.Context, c *Components, nv domain.PackageVersion) ([]domain.PackageVersion, error) {
	info, err := c.Global.VersionInfo(ctx, nv)
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("failed to inspect %s", nv))
	}

	required, err := a.resolveEdges(ctx, c, info.Dependencies, false)
	if err != nil {
		return nil, err
	}
	optional, err := a.resolveEdges(ctx, c, info.OptionalDependencies, true)
	if err != nil {
		return nil, err
	}

	if c.Resolver.Snapshot().HasPackage(domain.KindJsr, nv.Name) {
		pkg := domain.NewJsrPackage()
		pkg.Integrity = info.Dist.Integrity
		for name, constraint := range info.Dependencies {
			pkg.Dependencies[domain.NewRequirement(domain.KindRegistry, name, constraint)] = struct{}{}
		}
		c.Graph.SetJsrPackage(domain.NewJsrIdentity(nv), pkg)
	} else {
		pkg := domain.NewRegistryPackage()
		pkg.Integrity = info.Dist.Integrity
		for name, child := range required {
			pkg.Dependencies[domain.NewInternedString(name)] = identityFor(domain.KindRegistry, child)
		}
		for name, child := range optional {
			pkg.OptionalDependencies[domain.NewInternedString(name)] = identityFor(domain.KindRegistry, child)
		}
		pkg.OS = info.OS
		pkg.CPU = info.CPU
		pkg.Deprecated = info.Deprecated != ""
		pkg.HasScripts = info.HasInstallScript()
		pkg.HasBin = len(info.Bin) > 0
		c.Graph.SetRegistryPackage(identityFor(domain.KindRegistry, nv), pkg)
	}

	children := make([]domain.PackageVersion, 0, len(required)+len(optional))
	for _, child := range required {
		children = append(children, child)
	}
	for _, child := range optional {
		children = append(children, child)
	}
	return children, nil
}

// resolveEdges resolves one package's direct dependency map. Optional
// dependencies that cannot be resolved (e.g. platform-specific artifacts
// absent from the registry) are skipped with a warning instead of failing
// the traversal.
func (a *App) resolveEdges(ctx context.Context, c *Components, deps map[string]string, optional bool) (map[string]domain.PackageVersion, error) {
	if len(deps) == 0 {
		return nil, nil
	}
	resolved := make(map[string]domain.PackageVersion, len(deps))
	for name, constraint := range deps {
		req := domain.NewRequirement(domain.KindRegistry, name, constraint)
		versions, err := c.Resolver.Resolve(ctx, []domain.PackageRequirement{req})
		if err != nil {
			if optional {
				a.logger.Warn(fmt.Sprintf("skipping optional dependency %s: %v", req, err))
				continue
			}
			return nil, err
		}
		resolved[name] = versions[0]
	}
	return resolved, nil
}

func identityFor(kind domain.PackageKind, nv domain.PackageVersion) domain.PackageIdentity {
	if kind == domain.KindJsr {
		return domain.NewJsrIdentity(nv)
	}
	return domain.NewRegistryIdentity(nv.String())
}
