package domain

import (
	"go.trai.ch/zerr"
)

// Graph is the in-memory model of all resolved packages and their
// reachability from root requirements. It is built once from lockfile
// content at process start, mutated by root-removal operations and by
// successful installer resolutions, and serialized back before persisting.
//
// Packages live in arenas keyed by identity; dependents are stored as sets
// of keys rather than references, so the A-depends-on-B / B-lists-A shape
// carries no ownership cycles. The graph is not safe for unsynchronized
// concurrent mutation; callers keep single-writer discipline.
type Graph struct {
	roots    map[PackageRequirement]PackageIdentity
	registry map[PackageIdentity]*RegistryPackage
	jsr      map[PackageIdentity]*JsrPackage
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		roots:    make(map[PackageRequirement]PackageIdentity),
		registry: make(map[PackageIdentity]*RegistryPackage),
		jsr:      make(map[PackageIdentity]*JsrPackage),
	}
}

// NewGraphFromLockfile builds the graph from persisted lockfile content:
// every specifiers entry becomes a root-map identity, every package entry
// becomes a package body, and a single reverse-edge pass computes every
// dependents set.
func NewGraphFromLockfile(content *LockfileContent) (*Graph, error) {
	g := NewGraph()

	for spec, value := range content.Specifiers {
		req, err := ParseRequirement(spec)
		if err != nil {
			return nil, err
		}
		switch req.Kind {
		case KindJsr:
			g.roots[req] = NewJsrIdentity(PackageVersion{Name: req.Name, Version: value})
		default:
			g.roots[req] = NewRegistryIdentity(value)
		}
	}

	for id, entry := range content.Npm {
		pkg := NewRegistryPackage()
		pkg.Integrity = entry.Integrity
		for name, dep := range entry.Dependencies {
			pkg.Dependencies[NewInternedString(name)] = NewRegistryIdentity(dep)
		}
		for name, dep := range entry.OptionalDependencies {
			pkg.OptionalDependencies[NewInternedString(name)] = NewRegistryIdentity(dep)
		}
		for name, dep := range entry.OptionalPeers {
			pkg.OptionalPeers[NewInternedString(name)] = NewRegistryIdentity(dep)
		}
		pkg.OS = entry.OS
		pkg.CPU = entry.CPU
		pkg.Tarball = entry.Tarball
		pkg.Deprecated = entry.Deprecated
		pkg.HasScripts = entry.Scripts
		pkg.HasBin = entry.Bin
		g.registry[NewRegistryIdentity(id)] = pkg
	}

	for nv, entry := range content.Jsr {
		version, err := ParsePackageVersion(nv)
		if err != nil {
			return nil, err
		}
		pkg := NewJsrPackage()
		pkg.Integrity = entry.Integrity
		for _, dep := range entry.Dependencies {
			req, err := ParseRequirement(dep)
			if err != nil {
				return nil, err
			}
			pkg.Dependencies[req] = struct{}{}
		}
		g.jsr[NewJsrIdentity(version)] = pkg
	}

	g.buildDependents()
	return g, nil
}

// buildDependents computes every dependents set as the transpose of the
// dependency edges. JSR dependency requirements are resolved through the
// root map; a requirement with no matching root denotes an external or
// not-yet-materialized workspace reference and is skipped.
func (g *Graph) buildDependents() {
	for id, pkg := range g.registry {
		pkg.AllDependencyEdges(func(dep PackageIdentity) bool {
			g.addDependent(dep, id)
			return true
		})
	}
	for id, pkg := range g.jsr {
		for req := range pkg.Dependencies {
			dep, ok := g.roots[req]
			if !ok {
				continue
			}
			g.addDependent(dep, id)
		}
	}
}

func (g *Graph) addDependent(target, dependent PackageIdentity) {
	switch target.Kind {
	case KindJsr:
		if pkg, ok := g.jsr[target]; ok {
			pkg.Dependents[dependent] = struct{}{}
		}
	default:
		if pkg, ok := g.registry[target]; ok {
			pkg.Dependents[dependent] = struct{}{}
		}
	}
}

// AddRoot records a resolved root requirement.
func (g *Graph) AddRoot(req PackageRequirement, id PackageIdentity) {
	g.roots[req] = id
}

// Root looks up the identity resolved for a root requirement.
func (g *Graph) Root(req PackageRequirement) (PackageIdentity, bool) {
	id, ok := g.roots[req]
	return id, ok
}

// SetRegistryPackage inserts or replaces a registry package body and records
// its reverse edges.
func (g *Graph) SetRegistryPackage(id PackageIdentity, pkg *RegistryPackage) {
	g.registry[id] = pkg
	pkg.AllDependencyEdges(func(dep PackageIdentity) bool {
		g.addDependent(dep, id)
		return true
	})
}

// SetJsrPackage inserts or replaces a JSR package body and records its
// reverse edges through the root map.
func (g *Graph) SetJsrPackage(id PackageIdentity, pkg *JsrPackage) {
	g.jsr[id] = pkg
	for req := range pkg.Dependencies {
		if dep, ok := g.roots[req]; ok {
			g.addDependent(dep, id)
		}
	}
}

// RegistryPackage looks up a registry package body.
func (g *Graph) RegistryPackage(id PackageIdentity) (*RegistryPackage, bool) {
	pkg, ok := g.registry[id]
	return pkg, ok
}

// JsrPackage looks up a JSR package body.
func (g *Graph) JsrPackage(id PackageIdentity) (*JsrPackage, bool) {
	pkg, ok := g.jsr[id]
	return pkg, ok
}

// RemoveRoot removes a root requirement from the graph.
//
// Registry identities lose only their root-map entry: the package body stays,
// because external resolvers reuse structurally-equal registry subgraphs
// across reinstalls. JSR identities trigger a full reachability purge of
// every JSR package reachable only through the removed root. The asymmetry
// is intentional: JSR deduplication across roots is not supported upstream,
// so a JSR subtree is owned by its root. Do not unify the two strategies
// without confirming that constraint no longer holds.
func (g *Graph) RemoveRoot(req PackageRequirement) {
	id, ok := g.roots[req]
	if !ok {
		return
	}

	if id.Kind == KindRegistry {
		delete(g.roots, req)
		return
	}

	visited := make(map[PackageIdentity]struct{})
	queue := []PackageIdentity{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, seen := visited[current]; seen || current.Kind != KindJsr {
			continue
		}
		visited[current] = struct{}{}

		pkg, ok := g.jsr[current]
		if !ok {
			continue
		}
		// Outward along dependency edges, re-resolved through the root map.
		for depReq := range pkg.Dependencies {
			if dep, ok := g.roots[depReq]; ok {
				queue = append(queue, dep)
			}
		}
		// Inward along recorded dependents.
		for dependent := range pkg.Dependents {
			queue = append(queue, dependent)
		}
	}

	for collected := range visited {
		delete(g.jsr, collected)
	}
	for rootReq, rootID := range g.roots {
		if _, collected := visited[rootID]; collected {
			delete(g.roots, rootReq)
		}
	}
}

// RemoveByName removes every root entry matching (kind, name), for callers
// that do not know the exact requirement text (e.g. a link-style removal).
func (g *Graph) RemoveByName(kind PackageKind, name InternedString) {
	var matched []PackageRequirement
	for req := range g.roots {
		if req.Kind == kind && req.Name == name {
			matched = append(matched, req)
		}
	}
	for _, req := range matched {
		g.RemoveRoot(req)
	}
}

// Populate serializes the graph back into lockfile content: every package
// still present is emitted, with JSR dependency lists filtered to
// requirements still in the root map and registry dependency maps filtered
// to identities still in the package tables, so a pruned dependency never
// dangles. Each root's specifier value is re-derived from its identity.
func (g *Graph) Populate(out *LockfileContent) error {
	for req, id := range g.roots {
		switch id.Kind {
		case KindJsr:
			version, err := id.Version()
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid root identity"), "requirement", req.String())
			}
			out.Specifiers[req.String()] = version.Version
		default:
			out.Specifiers[req.String()] = id.ID()
		}
	}

	for id, pkg := range g.registry {
		entry := NpmLockEntry{
			Integrity:  pkg.Integrity,
			OS:         pkg.OS,
			CPU:        pkg.CPU,
			Tarball:    pkg.Tarball,
			Deprecated: pkg.Deprecated,
			Scripts:    pkg.HasScripts,
			Bin:        pkg.HasBin,
		}
		entry.Dependencies = g.populateEdges(pkg.Dependencies)
		entry.OptionalDependencies = g.populateEdges(pkg.OptionalDependencies)
		entry.OptionalPeers = g.populateEdges(pkg.OptionalPeers)
		out.Npm[id.ID()] = entry
	}

	for id, pkg := range g.jsr {
		entry := JsrLockEntry{Integrity: pkg.Integrity}
		for req := range pkg.Dependencies {
			if _, ok := g.roots[req]; !ok {
				continue
			}
			entry.Dependencies = append(entry.Dependencies, req.String())
		}
		out.Jsr[id.ID()] = entry
	}

	return nil
}

func (g *Graph) populateEdges(edges map[InternedString]PackageIdentity) map[string]string {
	if len(edges) == 0 {
		return nil
	}
	result := make(map[string]string, len(edges))
	for name, dep := range edges {
		if !g.contains(dep) {
			continue
		}
		result[name.String()] = dep.ID()
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func (g *Graph) contains(id PackageIdentity) bool {
	if id.Kind == KindJsr {
		_, ok := g.jsr[id]
		return ok
	}
	_, ok := g.registry[id]
	return ok
}

// Roots returns a copy of the root map.
func (g *Graph) Roots() map[PackageRequirement]PackageIdentity {
	result := make(map[PackageRequirement]PackageIdentity, len(g.roots))
	for req, id := range g.roots {
		result[req] = id
	}
	return result
}

// PackageCount returns the number of package bodies across both arenas.
func (g *Graph) PackageCount() int {
	return len(g.registry) + len(g.jsr)
}
