package domain

// LockfileContent is the persisted shape of the lockfile: the specifiers
// table mapping requirement strings to resolved value strings, the
// per-ecosystem package tables, and the remote-URL checksum table.
//
// For registry entries the specifier value is the full identity id string;
// for JSR entries it is the bare resolved version.
type LockfileContent struct {
	// Version is the lockfile format version, allowing schema migrations.
	Version int `json:"version"`

	Specifiers map[string]string `json:"specifiers,omitempty"`

	// Npm maps registry identity id strings to their package entries.
	Npm map[string]NpmLockEntry `json:"npm,omitempty"`

	// Jsr maps "name@version" strings to their package entries.
	Jsr map[string]JsrLockEntry `json:"jsr,omitempty"`

	// Remotes maps remote URLs to their content checksums.
	Remotes map[string]string `json:"remotes,omitempty"`
}

// NpmLockEntry is one registry package in the lockfile.
type NpmLockEntry struct {
	Integrity            string            `json:"integrity,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	OptionalPeers        map[string]string `json:"optionalPeers,omitempty"`
	OS                   []string          `json:"os,omitempty"`
	CPU                  []string          `json:"cpu,omitempty"`
	Tarball              string            `json:"tarball,omitempty"`
	Deprecated           bool              `json:"deprecated,omitempty"`
	Scripts              bool              `json:"scripts,omitempty"`
	Bin                  bool              `json:"bin,omitempty"`
}

// JsrLockEntry is one JSR package in the lockfile. Dependencies are
// requirement strings resolved through the specifiers table.
type JsrLockEntry struct {
	Integrity    string   `json:"integrity,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// NewLockfileContent creates an empty lockfile at the current format version.
func NewLockfileContent() *LockfileContent {
	return &LockfileContent{
		Version:    LockfileVersion,
		Specifiers: make(map[string]string),
		Npm:        make(map[string]NpmLockEntry),
		Jsr:        make(map[string]JsrLockEntry),
		Remotes:    make(map[string]string),
	}
}

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// IsEmpty reports whether the lockfile records nothing.
func (c *LockfileContent) IsEmpty() bool {
	return len(c.Specifiers) == 0 && len(c.Npm) == 0 && len(c.Jsr) == 0 && len(c.Remotes) == 0
}
