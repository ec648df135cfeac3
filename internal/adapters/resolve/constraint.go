package resolve

import (
	"strings"

	"golang.org/x/mod/semver"
)

// matchesConstraint reports whether version satisfies the constraint. The
// supported grammar covers the overwhelmingly common forms: "*", exact
// versions, caret ranges, tilde ranges, and ">=" bounds. Anything else
// matches nothing and surfaces as "package not found" with the constraint
// attached.
func matchesConstraint(constraint, version string) bool {
	constraint = strings.TrimSpace(constraint)
	switch {
	case constraint == "" || constraint == "*":
		return true

	case strings.HasPrefix(constraint, "^"):
		base := canonical(constraint[1:])
		v := canonical(version)
		if !semver.IsValid(base) || !semver.IsValid(v) {
			return false
		}
		// Below 1.0.0 a caret only floats the patch level.
		if semver.Major(base) == "v0" {
			return semver.MajorMinor(v) == semver.MajorMinor(base) && semver.Compare(v, base) >= 0
		}
		return semver.Major(v) == semver.Major(base) && semver.Compare(v, base) >= 0

	case strings.HasPrefix(constraint, "~"):
		base := canonical(constraint[1:])
		v := canonical(version)
		if !semver.IsValid(base) || !semver.IsValid(v) {
			return false
		}
		return semver.MajorMinor(v) == semver.MajorMinor(base) && semver.Compare(v, base) >= 0

	case strings.HasPrefix(constraint, ">="):
		base := canonical(strings.TrimSpace(constraint[2:]))
		v := canonical(version)
		if !semver.IsValid(base) || !semver.IsValid(v) {
			return false
		}
		return semver.Compare(v, base) >= 0

	default:
		// Exact version.
		return version == constraint
	}
}

// compareVersions orders two registry version strings.
func compareVersions(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

// canonical maps a registry version string onto the "v"-prefixed form the
// semver package expects.
func canonical(version string) string {
	if version == "" {
		return version
	}
	return "v" + strings.TrimPrefix(version, "v")
}
