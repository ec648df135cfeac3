// Package app implements the application layer for pakt: it glues the loaded
// project configuration, the lockfile package graph, the installer engine,
// and the filesystem cache into the user-facing operations.
package app

import (
	"context"
	"strings"

	"go.trai.ch/pakt/internal/adapters/tarball"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options carry per-invocation overrides on top of the project
// configuration.
type Options struct {
	// Dir is the project directory holding the configuration file.
	Dir string

	// CacheSetting, when non-nil, overrides the configured cache trust
	// policy for this run.
	CacheSetting *domain.CacheSetting

	// Frozen forbids lockfile mutation: every declared requirement must
	// already be recorded, and nothing is written back.
	Frozen bool
}

// App holds the config-independent singletons and exposes the package
// management operations.
type App struct {
	configLoader ports.ConfigLoader
	extractor    *tarball.Extractor
	scripts      ports.ScriptRunner
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, extractor *tarball.Extractor, scripts ports.ScriptRunner, telemetry ports.Telemetry, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		extractor:    extractor,
		scripts:      scripts,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// Install resolves the declared top-level requirements, populates the cache
// for the full dependency closure, and persists the resulting graph to the
// lockfile.
func (a *App) Install(ctx context.Context, opts Options) error {
	comps, err := a.load(opts)
	if err != nil {
		return err
	}

	if opts.Frozen {
		if err := a.verifyFrozen(comps); err != nil {
			return err
		}
	}

	if err := comps.Installer.EnsureTopLevelInstall(ctx); err != nil {
		return zerr.Wrap(err, "failed to resolve declared dependencies")
	}
	if err := comps.Installer.InjectImplicitTypesPackage(ctx); err != nil {
		return zerr.Wrap(err, "failed to inject implicit type definitions")
	}

	closure, err := a.resolveClosure(ctx, comps, comps.Config.Dependencies)
	if err != nil {
		return err
	}
	if err := comps.Installer.CachePackages(ctx, closure); err != nil {
		return err
	}

	if opts.Frozen {
		return nil
	}
	return a.persist(comps)
}

// Add resolves additional requirements, caches their closure, and records
// them as new roots in the lockfile. The configuration file itself is left
// untouched.
func (a *App) Add(ctx context.Context, opts Options, specs []string) error {
	reqs, err := parseRequirements(specs)
	if err != nil {
		return err
	}

	comps, err := a.load(opts)
	if err != nil {
		return err
	}

	closure, err := a.resolveClosure(ctx, comps, reqs)
	if err != nil {
		return err
	}
	if err := comps.Installer.CachePackages(ctx, closure); err != nil {
		return err
	}
	return a.persist(comps)
}

// Remove drops root requirements from the lockfile graph by name. Registry
// roots lose only their specifier entry; JSR roots take their exclusive
// subtree with them.
func (a *App) Remove(_ context.Context, opts Options, names []string) error {
	comps, err := a.load(opts)
	if err != nil {
		return err
	}

	for _, name := range names {
		kind := domain.KindRegistry
		if rest, ok := strings.CutPrefix(name, "jsr:"); ok {
			kind = domain.KindJsr
			name = rest
		}
		comps.Graph.RemoveByName(kind, domain.NewInternedString(name))
	}
	return a.persist(comps)
}

// CachePackages resolves the given requirements (or every declared one when
// none are given) and populates the cache, without touching the lockfile.
func (a *App) CachePackages(ctx context.Context, opts Options, specs []string) error {
	comps, err := a.load(opts)
	if err != nil {
		return err
	}

	reqs := comps.Config.Dependencies
	if len(specs) > 0 {
		if reqs, err = parseRequirements(specs); err != nil {
			return err
		}
	}

	versions, err := comps.Resolver.Resolve(ctx, reqs)
	if err != nil {
		return err
	}
	return comps.Installer.CachePackages(ctx, versions)
}

// load reads the project configuration, applies per-run overrides, and
// builds the per-run components.
func (a *App) load(opts Options) (*Components, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.CacheSetting != nil {
		cfg.CacheSetting = *opts.CacheSetting
	}
	return a.buildComponents(cfg, dir)
}

// verifyFrozen checks that every declared requirement is already recorded as
// a graph root.
func (a *App) verifyFrozen(c *Components) error {
	for _, req := range c.Config.Dependencies {
		if _, ok := c.Graph.Root(req); !ok {
			return zerr.With(zerr.Wrap(domain.ErrLockfileChanged, "declared requirement is not in the lockfile"), "requirement", req.String())
		}
	}
	return nil
}

// persist serializes the graph back into lockfile content, saves it, and
// refreshes the installer's optimistic-concurrency baseline.
func (a *App) persist(c *Components) error {
	content := domain.NewLockfileContent()
	if err := c.Graph.Populate(content); err != nil {
		return zerr.Wrap(err, "failed to serialize package graph")
	}
	if err := c.Store.Save(content); err != nil {
		return zerr.Wrap(err, "failed to save lockfile")
	}
	return c.Installer.RefreshBaseline()
}

func parseRequirements(specs []string) ([]domain.PackageRequirement, error) {
	reqs := make([]domain.PackageRequirement, 0, len(specs))
	for _, spec := range specs {
		req, err := domain.ParseRequirement(spec)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
