package dhash

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/zerr"

	// Registers the WebP decoder; imaging itself covers JPEG, PNG, GIF, BMP
	// and TIFF.
	_ "golang.org/x/image/webp"
)

var _ ports.ImageSource = (*Source)(nil)

// Source implements ports.ImageSource on top of the local filesystem.
type Source struct{}

// NewSource creates a Source.
func NewSource() *Source {
	return &Source{}
}

// Fingerprint decodes the image at path and hashes its pixels. EXIF
// orientation is ignored on purpose: a rotated copy has different pixels and
// is a different image.
func (s *Source) Fingerprint(path string) (domain.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	img, err := imaging.Decode(f)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
	}
	return DHash(img), nil
}

// Dimensions reads the pixel size from the image header without decoding the
// pixel data.
func (s *Source) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
	}
	return cfg.Width, cfg.Height, nil
}
