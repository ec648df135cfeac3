package tarball

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/core/ports"
)

const NodeID = ports.ExtractorNodeID

func init() {
	graft.Register(graft.Node[*Extractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ports.LoggerNodeID},
		Run: func(ctx context.Context) (*Extractor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(log), nil
		},
	})
}
