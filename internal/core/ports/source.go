package ports

import "go.trai.ch/lookalike/internal/core/domain"

// ImageSource defines the interface for reading image content from disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type ImageSource interface {
	// Fingerprint decodes the image at path and computes its perceptual
	// fingerprint. The result depends only on the pixel data.
	Fingerprint(path string) (domain.Fingerprint, error)

	// Dimensions reads the pixel dimensions from the image header without
	// decoding the full image.
	Dimensions(path string) (width, height int, err error)
}
