package fsinstall

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/adapters/cache"
	"go.trai.ch/pakt/internal/adapters/fslock"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
)

// LocalInstaller implements ports.FsInstaller for local materialization
// mode: packages are cached globally first, then hard-linked into the
// project folder, where lifecycle scripts may run.
type LocalInstaller struct {
	global  *GlobalInstaller
	dir     string
	scripts ports.ScriptRunner
	logger  ports.Logger
}

// NewLocalInstaller creates a LocalInstaller materializing into dir.
func NewLocalInstaller(global *GlobalInstaller, dir string, scripts ports.ScriptRunner, logger ports.Logger) *LocalInstaller {
	return &LocalInstaller{
		global:  global,
		dir:     dir,
		scripts: scripts,
		logger:  logger,
	}
}

// CachePackages populates the global cache for every listed package and
// links each one into the project folder. Linking runs under the folder
// lock, so a crash mid-link leaves no half-populated package folder behind.
func (l *LocalInstaller) CachePackages(ctx context.Context, pkgs []domain.PackageVersion) error {
	if err := l.global.CachePackages(ctx, pkgs); err != nil {
		return err
	}

	for _, nv := range pkgs {
		if err := l.materialize(ctx, nv); err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalInstaller) materialize(ctx context.Context, nv domain.PackageVersion) error {
	target := filepath.Join(l.dir, filepath.FromSlash(nv.Name.String()))
	if info, err := os.Stat(target); err == nil && info.IsDir() && !fslock.HasLock(target) {
		return nil
	}

	src := l.global.FolderPath(nv)
	if err := os.RemoveAll(target); err != nil {
		return err
	}
	if err := fslock.WithFolderLock(nv, target, func() error {
		return cache.LinkTree(src, target)
	}); err != nil {
		return err
	}

	version, err := l.global.VersionInfo(ctx, nv)
	if err != nil {
		return err
	}
	if version.HasInstallScript() {
		for _, script := range []string{"preinstall", "install", "postinstall"} {
			if _, ok := version.Scripts[script]; !ok {
				continue
			}
			if err := l.scripts.RunScript(ctx, nv, target, script); err != nil {
				return err
			}
		}
	}
	return nil
}
