package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/core/ports"
)

const NodeID = ports.ConfigLoaderNodeID

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ports.LoggerNodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
