package domain

// RegistryPackage is the graph body of one registry package identity.
//
// Dependents is the exact transpose of the dependency edges pointing at this
// identity; it is rebuilt during Graph construction and maintained by
// mutations.
type RegistryPackage struct {
	Dependents           map[PackageIdentity]struct{}
	Integrity            string
	Dependencies         map[InternedString]PackageIdentity
	OptionalDependencies map[InternedString]PackageIdentity
	OptionalPeers        map[InternedString]PackageIdentity
	OS                   []string
	CPU                  []string
	// Tarball overrides the registry-derived tarball URL when set.
	Tarball    string
	Deprecated bool
	HasScripts bool
	HasBin     bool
}

// NewRegistryPackage creates an empty registry package body.
func NewRegistryPackage() *RegistryPackage {
	return &RegistryPackage{
		Dependents:           make(map[PackageIdentity]struct{}),
		Dependencies:         make(map[InternedString]PackageIdentity),
		OptionalDependencies: make(map[InternedString]PackageIdentity),
		OptionalPeers:        make(map[InternedString]PackageIdentity),
	}
}

// AllDependencyEdges calls yield for every outgoing edge target across the
// required, optional, and optional-peer maps.
func (p *RegistryPackage) AllDependencyEdges(yield func(PackageIdentity) bool) {
	for _, id := range p.Dependencies {
		if !yield(id) {
			return
		}
	}
	for _, id := range p.OptionalDependencies {
		if !yield(id) {
			return
		}
	}
	for _, id := range p.OptionalPeers {
		if !yield(id) {
			return
		}
	}
}

// JsrPackage is the graph body of one JSR package identity. Its dependency
// edges are recorded as requirements and resolved indirectly through the
// graph's root map.
type JsrPackage struct {
	Dependents   map[PackageIdentity]struct{}
	Integrity    string
	Dependencies map[PackageRequirement]struct{}
}

// NewJsrPackage creates an empty JSR package body.
func NewJsrPackage() *JsrPackage {
	return &JsrPackage{
		Dependents:   make(map[PackageIdentity]struct{}),
		Dependencies: make(map[PackageRequirement]struct{}),
	}
}
