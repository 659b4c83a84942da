package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lookalike/internal/adapters/dhash"
	"go.trai.ch/lookalike/internal/adapters/logger"
	"go.trai.ch/lookalike/internal/core/ports"
)

const NodeID graft.ID = "adapter.fs.enumerator"

func init() {
	graft.Register(graft.Node[ports.Enumerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{dhash.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Enumerator, error) {
			source, err := graft.Dep[ports.ImageSource](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEnumerator(source, log), nil
		},
	})
}
