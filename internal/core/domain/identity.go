package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// PackageIdentity names exactly one node in the lockfile package graph.
//
// For registry packages the id is an opaque string encoding "name@version"
// plus, for diamond/peer-dependency duplication, an underscore-separated peer
// suffix ("name@version_peerdep@1.0.0"). Two identities with the same
// (name, version) but different suffixes are distinct graph nodes backed by
// byte-identical on-disk content.
//
// For JSR packages the id is always the plain "name@version" of the resolved
// PackageVersion; JSR deduplication per call site is not supported upstream.
type PackageIdentity struct {
	Kind PackageKind
	id   InternedString
}

// NewRegistryIdentity creates a registry identity from its opaque id string.
func NewRegistryIdentity(id string) PackageIdentity {
	return PackageIdentity{Kind: KindRegistry, id: NewInternedString(id)}
}

// NewJsrIdentity creates a JSR identity from a resolved package version.
func NewJsrIdentity(v PackageVersion) PackageIdentity {
	return PackageIdentity{Kind: KindJsr, id: NewInternedString(v.String())}
}

// ID returns the opaque identity string.
func (p PackageIdentity) ID() string {
	return p.id.String()
}

// IsZero reports whether the identity is the zero value.
func (p PackageIdentity) IsZero() bool {
	return p.id == InternedString{}
}

// Version re-derives the concrete (name, version) pair from the identity,
// stripping any peer-dependency suffix.
func (p PackageIdentity) Version() (PackageVersion, error) {
	id := p.id.String()
	if p.Kind == KindRegistry && len(id) > 1 {
		// The name/version separator is the first "@" past a leading scope
		// marker; the peer suffix itself may contain "@" ("a@1.0_b@2.0"), so
		// everything from the first "_" after the separator is stripped
		// before the split.
		if sep := strings.Index(id[1:], "@"); sep >= 0 {
			sep++
			name, rest := id[:sep], id[sep+1:]
			if cut := strings.Index(rest, "_"); cut >= 0 {
				rest = rest[:cut]
			}
			if rest == "" {
				return PackageVersion{}, zerr.With(zerr.Wrap(ErrMalformedSpecifier, "registry identity lacks a version"), "id", id)
			}
			return NewPackageVersion(name, rest), nil
		}
	}
	return ParsePackageVersion(id)
}

// CacheFolderID addresses one extracted on-disk instance of a package
// version. CopyIndex 0 is the single canonical copy; indices >= 1 are
// hard-link clones that carry distinct dependency sets for different parents.
type CacheFolderID struct {
	Version   PackageVersion
	CopyIndex int
}

// FolderName returns the directory name under the per-package cache path:
// "<version>" for the canonical copy, "<version>_<n>" for clones.
func (f CacheFolderID) FolderName() string {
	if f.CopyIndex == 0 {
		return f.Version.Version
	}
	return f.Version.Version + "_" + strconv.Itoa(f.CopyIndex)
}

// Canonical returns the id of the canonical copy of the same version.
func (f CacheFolderID) Canonical() CacheFolderID {
	return CacheFolderID{Version: f.Version}
}
