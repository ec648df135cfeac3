package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/tarball"
	"go.trai.ch/pakt/internal/core/ports"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			ports.LoggerNodeID,
			ports.ConfigLoaderNodeID,
			ports.ExtractorNodeID,
			ports.ScriptRunnerNodeID,
			ports.TelemetryNodeID,
		},
		Run: runAppNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	extractor, err := graft.Dep[*tarball.Extractor](ctx)
	if err != nil {
		return nil, err
	}
	scripts, err := graft.Dep[ports.ScriptRunner](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, extractor, scripts, telemetry, log), nil
}
