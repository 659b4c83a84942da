package dhash

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lookalike/internal/core/ports"
)

// NodeID is the unique identifier for the image source Graft node.
const NodeID graft.ID = "adapter.image_source"

func init() {
	graft.Register(graft.Node[ports.ImageSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImageSource, error) {
			return NewSource(), nil
		},
	})
}
