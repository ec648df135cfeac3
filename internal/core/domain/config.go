package domain

// ProjectConfig is the loaded project configuration relevant to package
// management: the declared top-level requirements, registry location, cache
// root, and cache trust policy.
type ProjectConfig struct {
	// RegistryURL is the base URL of the semver-style registry.
	RegistryURL string

	// JsrURL is the base URL of the JSR-style registry.
	JsrURL string

	// CacheDir is the root of the machine-wide package cache.
	CacheDir string

	// LocalDir, when set, selects local materialization mode and names the
	// folder packages are linked into.
	LocalDir string

	// LockfilePath is the path of the lockfile, relative to the project root.
	LockfilePath string

	// Dependencies are the declared top-level requirements.
	Dependencies []PackageRequirement

	// CacheSetting governs trust of existing cache entries for this run.
	CacheSetting CacheSetting
}
