// Package domain contains the core domain models and business logic for the
// package-management core: requirements, resolved versions, the lockfile
// package graph, and integrity descriptors.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageKind distinguishes the two supported package ecosystems.
type PackageKind uint8

const (
	// KindRegistry identifies semver-registry packages (npm-style).
	KindRegistry PackageKind = iota
	// KindJsr identifies JSR-style packages.
	KindJsr
)

// String returns the scheme prefix used in requirement and lockfile strings.
func (k PackageKind) String() string {
	if k == KindJsr {
		return "jsr"
	}
	return "npm"
}

// PackageRequirement is an unresolved dependency as written in configuration
// or in the lockfile's specifiers table: an ecosystem kind, a package name,
// and a version range or tag.
type PackageRequirement struct {
	Kind       PackageKind
	Name       InternedString
	Constraint string
}

// NewRequirement creates a requirement from its parts. An empty constraint
// is normalized to "*".
func NewRequirement(kind PackageKind, name, constraint string) PackageRequirement {
	if constraint == "" {
		constraint = "*"
	}
	return PackageRequirement{
		Kind:       kind,
		Name:       NewInternedString(name),
		Constraint: constraint,
	}
}

// String renders the requirement in the canonical "npm:name@constraint" /
// "jsr:name@constraint" form used as specifier keys in the lockfile.
func (r PackageRequirement) String() string {
	return r.Kind.String() + ":" + r.Name.String() + "@" + r.Constraint
}

// ParseRequirement parses the canonical requirement form produced by String.
// Scoped names ("@scope/name") are supported: the constraint separator is the
// last "@" that is not the leading one.
func ParseRequirement(s string) (PackageRequirement, error) {
	kind := KindRegistry
	rest := s
	switch {
	case strings.HasPrefix(s, "npm:"):
		rest = s[len("npm:"):]
	case strings.HasPrefix(s, "jsr:"):
		kind = KindJsr
		rest = s[len("jsr:"):]
	}

	name, constraint, err := splitNameSuffix(rest)
	if err != nil {
		return PackageRequirement{}, zerr.With(zerr.Wrap(err, "malformed requirement"), "requirement", s)
	}
	return NewRequirement(kind, name, constraint), nil
}

// PackageVersion is a resolved concrete (name, version) pair.
type PackageVersion struct {
	Name    InternedString
	Version string
}

// NewPackageVersion creates a PackageVersion.
func NewPackageVersion(name, version string) PackageVersion {
	return PackageVersion{Name: NewInternedString(name), Version: version}
}

// String renders "name@version".
func (v PackageVersion) String() string {
	return v.Name.String() + "@" + v.Version
}

// ParsePackageVersion parses "name@version", supporting scoped names.
func ParsePackageVersion(s string) (PackageVersion, error) {
	name, version, err := splitNameSuffix(s)
	if err != nil {
		return PackageVersion{}, zerr.With(zerr.Wrap(err, "malformed package version"), "value", s)
	}
	if version == "" {
		return PackageVersion{}, zerr.With(zerr.Wrap(ErrMalformedSpecifier, "missing version"), "value", s)
	}
	return NewPackageVersion(name, version), nil
}

// JsrCompatName maps a JSR package name onto the name the JSR registry's
// npm-compatibility endpoint serves it under: "@scope/name" becomes
// "@jsr/scope__name".
func JsrCompatName(name string) string {
	trimmed := strings.TrimPrefix(name, "@")
	return "@jsr/" + strings.ReplaceAll(trimmed, "/", "__")
}

// splitNameSuffix splits "name@suffix" at the last "@" that does not start a
// scope. The suffix may be empty ("name" alone).
func splitNameSuffix(s string) (name, suffix string, err error) {
	if s == "" {
		return "", "", ErrMalformedSpecifier
	}
	idx := strings.LastIndex(s[1:], "@")
	if idx < 0 {
		return s, "", nil
	}
	idx++ // account for the skipped leading byte
	name, suffix = s[:idx], s[idx+1:]
	if name == "" {
		return "", "", ErrMalformedSpecifier
	}
	return name, suffix, nil
}
