package domain

import (
	"fmt"
	"strconv"

	"github.com/artyom/phash"
	"go.trai.ch/zerr"
)

// FingerprintBits is the number of bits in a fingerprint, and therefore the
// maximum Hamming distance between two fingerprints.
const FingerprintBits = 64

// Fingerprint is a 64-bit perceptual difference hash of an image. Each bit
// encodes the horizontal brightness gradient between two adjacent cells of a
// 9x8 downscaled greyscale rendition, row by row, most significant bit first.
//
// Fingerprints are deterministic: the same pixel data always yields the same
// value, independent of file name, location or platform. This is what makes
// them safe to persist across runs.
type Fingerprint uint64

// Distance returns the Hamming distance to other, i.e. the number of
// differing gradient bits. Zero means perceptually identical.
func (f Fingerprint) Distance(other Fingerprint) int {
	return phash.Distance(uint64(f), uint64(other))
}

// String renders the fingerprint as a fixed-width lowercase hex string.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// MarshalText implements encoding.TextMarshaler so fingerprints serialize as
// hex strings in cache snapshots.
func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fingerprint) UnmarshalText(text []byte) error {
	parsed, err := ParseFingerprint(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFingerprint parses a hex string produced by Fingerprint.String.
func ParseFingerprint(s string) (Fingerprint, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, zerr.With(ErrInvalidFingerprint, "value", s)
	}
	return Fingerprint(v), nil
}
