package app

import (
	"path/filepath"

	"go.trai.ch/pakt/internal/adapters/cache"
	"go.trai.ch/pakt/internal/adapters/fsinstall"
	"go.trai.ch/pakt/internal/adapters/lockfileio"
	"go.trai.ch/pakt/internal/adapters/registry"
	"go.trai.ch/pakt/internal/adapters/resolve"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/pakt/internal/engine/installer"
	"go.trai.ch/zerr"
)

// Components are the per-run collaborators built from one loaded project
// configuration. A fresh set is constructed for every command invocation;
// only the config-independent singletons (logger, extractor, script runner,
// telemetry) are shared across runs.
type Components struct {
	Config    *domain.ProjectConfig
	Store     ports.LockfileStore
	Graph     *domain.Graph
	Resolver  ports.DependencyResolver
	Global    *fsinstall.GlobalInstaller
	Fs        ports.FsInstaller
	Installer *installer.Installer
}

// buildComponents wires caches, registry clients, the resolver, the
// filesystem installer, and the lockfile-backed graph for one project.
func (a *App) buildComponents(cfg *domain.ProjectConfig, projectDir string) (*Components, error) {
	npmCache, err := cache.New(cfg.CacheDir, cfg.RegistryURL, cfg.CacheSetting, a.logger)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open registry cache")
	}
	jsrCache, err := cache.New(cfg.CacheDir, cfg.JsrURL, cfg.CacheSetting, a.logger)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open jsr cache")
	}

	npmClient := registry.NewClient(cfg.RegistryURL, npmCache, a.logger)
	jsrClient := registry.NewClient(cfg.JsrURL, jsrCache, a.logger)
	resolver := resolve.NewResolver(npmClient, jsrClient, a.logger)

	global := fsinstall.NewGlobalInstaller(
		fsinstall.Registry{Client: npmClient, Fetcher: npmClient, Cache: npmCache},
		fsinstall.Registry{Client: jsrClient, Fetcher: jsrClient, Cache: jsrCache},
		resolver.Snapshot(),
		a.extractor,
		a.telemetry,
		a.logger,
	)
	var fs ports.FsInstaller = global
	if cfg.LocalDir != "" {
		fs = fsinstall.NewLocalInstaller(global, filepath.Join(projectDir, cfg.LocalDir), a.scripts, a.logger)
	}

	store := lockfileio.NewStore(filepath.Join(projectDir, cfg.LockfilePath))
	content, err := store.Load()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load lockfile")
	}
	graph, err := domain.NewGraphFromLockfile(content)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build package graph")
	}

	inst := installer.New(resolver, fs, a.logger)
	inst.TopLevelRequirements = cfg.Dependencies
	if err := inst.AttachLockfile(store); err != nil {
		return nil, zerr.Wrap(err, "failed to fingerprint lockfile")
	}

	return &Components{
		Config:    cfg,
		Store:     store,
		Graph:     graph,
		Resolver:  resolver,
		Global:    global,
		Fs:        fs,
		Installer: inst,
	}, nil
}
