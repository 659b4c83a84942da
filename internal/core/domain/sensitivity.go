package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Sensitivity selects how aggressively two fingerprints are considered
// duplicates. Each level maps to a maximum Hamming distance; lower
// sensitivity tolerates larger distances and therefore matches more loosely.
type Sensitivity string

const (
	// SensitivityHigh matches only perceptually identical images.
	SensitivityHigh Sensitivity = "high"
	// SensitivityMedium matches images with minor differences. This is the default.
	SensitivityMedium Sensitivity = "medium"
	// SensitivityLow matches images with visible differences.
	SensitivityLow Sensitivity = "low"
)

// ParseSensitivity converts a string to a Sensitivity.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SensitivityHigh):
		return SensitivityHigh, nil
	case string(SensitivityMedium):
		return SensitivityMedium, nil
	case string(SensitivityLow):
		return SensitivityLow, nil
	default:
		return "", zerr.With(ErrInvalidSensitivity, "value", s)
	}
}

// Thresholds maps each sensitivity level to its maximum Hamming distance.
// Two fingerprints belong to the same group when their distance is less than
// or equal to the selected threshold.
type Thresholds struct {
	High   int `yaml:"high"`
	Medium int `yaml:"medium"`
	Low    int `yaml:"low"`
}

// DefaultThresholds returns the built-in threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0, Medium: 5, Low: 10}
}

// For returns the maximum Hamming distance for the given sensitivity.
// Unknown levels fall back to medium.
func (t Thresholds) For(s Sensitivity) int {
	switch s {
	case SensitivityHigh:
		return t.High
	case SensitivityLow:
		return t.Low
	default:
		return t.Medium
	}
}

// Validate checks that every threshold is a representable Hamming distance
// and that the levels are ordered: a stricter level must never tolerate a
// larger distance than a looser one.
func (t Thresholds) Validate() error {
	for _, v := range []int{t.High, t.Medium, t.Low} {
		if v < 0 || v > FingerprintBits {
			return zerr.With(zerr.With(ErrConfigInvalid, "reason", "threshold out of range"), "threshold", v)
		}
	}
	if t.High > t.Medium || t.Medium > t.Low {
		return zerr.With(ErrConfigInvalid, "reason", "thresholds must satisfy high <= medium <= low")
	}
	return nil
}
