package domain

// RegistryPackageData is the full per-name registry metadata blob, as
// returned by the registry and cached on disk.
type RegistryPackageData struct {
	Name     string                         `json:"name"`
	DistTags map[string]string              `json:"dist-tags,omitempty"`
	Versions map[string]RegistryVersionData `json:"versions"`
}

// RegistryVersionData is the metadata of a single published version.
type RegistryVersionData struct {
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	Scripts              map[string]string `json:"scripts,omitempty"`
	Bin                  map[string]string `json:"bin,omitempty"`
	OS                   []string          `json:"os,omitempty"`
	CPU                  []string          `json:"cpu,omitempty"`
	Deprecated           string            `json:"deprecated,omitempty"`
	Dist                 DistInfo          `json:"dist"`
}

// HasInstallScript reports whether the version declares lifecycle scripts
// that run at install time.
func (v RegistryVersionData) HasInstallScript() bool {
	for _, name := range []string{"preinstall", "install", "postinstall"} {
		if _, ok := v.Scripts[name]; ok {
			return true
		}
	}
	return false
}
