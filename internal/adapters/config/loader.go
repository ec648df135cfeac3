// Package config provides the project configuration loader for pakt.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the project configuration file looked up in the working
// directory.
const Filename = "pakt.yaml"

// Defaults applied when the configuration file leaves a field empty.
const (
	DefaultRegistryURL  = "https://registry.npmjs.org"
	DefaultJsrURL       = "https://npm.jsr.io"
	DefaultLockfileName = "pakt.lock"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration from the given working directory.
func (l *Loader) Load(cwd string) (*domain.ProjectConfig, error) {
	path := filepath.Join(cwd, Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Paktfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Version != "" && file.Version != "1" {
		l.logger.Warn("unknown config version " + file.Version + ", continuing with version 1 semantics")
	}

	setting, err := ParseCacheSetting(file.Cache)
	if err != nil {
		return nil, err
	}

	cfg := &domain.ProjectConfig{
		RegistryURL:  withDefault(file.Registry, DefaultRegistryURL),
		JsrURL:       withDefault(file.JsrRegistry, DefaultJsrURL),
		CacheDir:     file.CacheDir,
		LocalDir:     file.LocalDir,
		LockfilePath: withDefault(file.Lockfile, DefaultLockfileName),
		Dependencies: dependencyRequirements(file.Dependencies),
		CacheSetting: setting,
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir, err = defaultCacheDir()
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ParseCacheSetting interprets the cache policy string: "use" (default),
// "only", "reload-all", or "reload:<name>[,<name>...]".
func ParseCacheSetting(s string) (domain.CacheSetting, error) {
	switch s {
	case "", "use":
		return domain.CacheSetting{Kind: domain.CacheUse}, nil
	case "only":
		return domain.CacheSetting{Kind: domain.CacheOnly}, nil
	case "reload-all":
		return domain.CacheSetting{Kind: domain.CacheReloadAll}, nil
	}
	if names, ok := strings.CutPrefix(s, "reload:"); ok {
		return domain.CacheSetting{
			Kind:  domain.CacheReloadSome,
			Names: strings.Split(names, ","),
		}, nil
	}
	return domain.CacheSetting{}, zerr.With(zerr.New("unknown cache setting"), "cache", s)
}

// dependencyRequirements turns the declared dependency map into requirements
// in deterministic name order. A value prefixed "jsr:" selects the JSR-style
// registry; everything else is a plain registry constraint.
func dependencyRequirements(deps map[string]string) []domain.PackageRequirement {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)

	reqs := make([]domain.PackageRequirement, 0, len(names))
	for _, name := range names {
		kind := domain.KindRegistry
		constraint := deps[name]
		if rest, ok := strings.CutPrefix(constraint, "jsr:"); ok {
			kind = domain.KindJsr
			constraint = rest
		}
		reqs = append(reqs, domain.NewRequirement(kind, name, constraint))
	}
	return reqs
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate user cache directory")
	}
	return filepath.Join(base, "pakt"), nil
}
