package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/core/ports"
)

const NodeID = ports.ScriptRunnerNodeID

func init() {
	graft.Register(graft.Node[ports.ScriptRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ports.LoggerNodeID},
		Run: func(ctx context.Context) (ports.ScriptRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
