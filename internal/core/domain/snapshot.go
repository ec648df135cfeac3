package domain

import "sync"

// ResolutionSnapshot is the shared view of what the external resolver has
// resolved so far. The resolver owns and writes it; the installer only
// consumes it. Reads and writes may come from parallel workers, so access
// is guarded internally.
type ResolutionSnapshot struct {
	mu       sync.RWMutex
	resolved map[PackageRequirement]PackageVersion
}

// NewResolutionSnapshot creates an empty snapshot.
func NewResolutionSnapshot() *ResolutionSnapshot {
	return &ResolutionSnapshot{
		resolved: make(map[PackageRequirement]PackageVersion),
	}
}

// Lookup returns the resolved version for a requirement, if any.
func (s *ResolutionSnapshot) Lookup(req PackageRequirement) (PackageVersion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.resolved[req]
	return v, ok
}

// Record stores a resolution. Only the resolver calls this.
func (s *ResolutionSnapshot) Record(req PackageRequirement, v PackageVersion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved[req] = v
}

// HasPackage reports whether any resolved requirement of the given kind
// names the package.
func (s *ResolutionSnapshot) HasPackage(kind PackageKind, name InternedString) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for req := range s.resolved {
		if req.Kind == kind && req.Name == name {
			return true
		}
	}
	return false
}

// Requirements returns the requirements resolved so far.
func (s *ResolutionSnapshot) Requirements() []PackageRequirement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reqs := make([]PackageRequirement, 0, len(s.resolved))
	for req := range s.resolved {
		reqs = append(reqs, req)
	}
	return reqs
}
