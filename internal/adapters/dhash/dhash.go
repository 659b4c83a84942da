// Package dhash computes perceptual difference hashes of images and exposes
// them through the ImageSource port.
package dhash

import (
	"image"

	"github.com/disintegration/imaging"
	"go.trai.ch/lookalike/internal/core/domain"
)

// Grid dimensions of the downscaled rendition. Nine columns yield eight
// horizontal gradients per row; eight rows yield the 64 fingerprint bits.
const (
	gridWidth  = 9
	gridHeight = 8
)

// DHash computes the difference hash of img. The image is reduced to a 9x8
// greyscale grid with a box filter and each bit records whether a cell is
// strictly brighter than its right neighbour, row by row, most significant
// bit first.
//
// The hash depends only on pixel data. Two files with identical pixels
// always collide, whatever their name, format metadata or timestamps.
func DHash(img image.Image) domain.Fingerprint {
	small := imaging.Resize(img, gridWidth, gridHeight, imaging.Box)

	var fp uint64
	for y := range gridHeight {
		for x := range gridWidth - 1 {
			fp <<= 1
			if luminance(small, x, y) > luminance(small, x+1, y) {
				fp |= 1
			}
		}
	}
	return domain.Fingerprint(fp)
}

// luminance returns the Rec. 601 luma of the pixel at (x, y), scaled by 1000.
func luminance(img *image.NRGBA, x, y int) int {
	i := y*img.Stride + x*4
	r := int(img.Pix[i])
	g := int(img.Pix[i+1])
	b := int(img.Pix[i+2])
	return 299*r + 587*g + 114*b
}
