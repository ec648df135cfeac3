package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// ScriptRunner executes package lifecycle scripts. Script orchestration is
// owned by the surrounding toolchain; the capability is injected here so the
// cache and installer stay host-agnostic.
//
//go:generate mockgen -source=scripts.go -destination=mocks/mock_scripts.go -package=mocks
type ScriptRunner interface {
	// RunScript runs a named lifecycle script (e.g. "postinstall") in the
	// extracted package folder.
	RunScript(ctx context.Context, nv domain.PackageVersion, dir, script string) error
}
