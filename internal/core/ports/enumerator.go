package ports

import (
	"context"

	"go.trai.ch/lookalike/internal/core/domain"
)

// Enumerator defines the interface for discovering candidate images.
//
//go:generate go run go.uber.org/mock/mockgen -source=enumerator.go -destination=mocks/mock_enumerator.go -package=mocks
type Enumerator interface {
	// Enumerate walks the requested folders and returns the images that pass
	// the extension and dimension filters, sorted by path and deduplicated.
	// Unreadable folders and unreadable image headers are reported as issues,
	// not errors; the error is reserved for cancellation and requests with no
	// usable folders.
	Enumerate(ctx context.Context, req domain.ScanRequest) ([]domain.ImageRecord, []domain.Issue, error)
}
