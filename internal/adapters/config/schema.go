package config

// Paktfile represents the structure of the pakt.yaml configuration file.
type Paktfile struct {
	Version      string            `yaml:"version"`
	Registry     string            `yaml:"registry"`
	JsrRegistry  string            `yaml:"jsrRegistry"`
	CacheDir     string            `yaml:"cacheDir"`
	LocalDir     string            `yaml:"localDir"`
	Lockfile     string            `yaml:"lockfile"`
	Cache        string            `yaml:"cache"`
	Dependencies map[string]string `yaml:"dependencies"`
}
