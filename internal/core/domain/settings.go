package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Renderer mode names accepted in config and on the command line.
const (
	// RendererAuto picks the TUI on a terminal and linear output otherwise.
	RendererAuto = "auto"
	// RendererTUI forces the interactive renderer.
	RendererTUI = "tui"
	// RendererLinear forces plain line output.
	RendererLinear = "linear"
)

// DimensionFilters bound the pixel dimensions of candidate images.
// Zero means unbounded.
type DimensionFilters struct {
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// Validate checks that the bounds are non-negative and not contradictory.
func (f DimensionFilters) Validate() error {
	for _, v := range []int{f.MinWidth, f.MinHeight, f.MaxWidth, f.MaxHeight} {
		if v < 0 {
			return zerr.With(ErrConfigInvalid, "reason", "dimension filters must not be negative")
		}
	}
	if f.MaxWidth > 0 && f.MinWidth > f.MaxWidth {
		return zerr.With(ErrConfigInvalid, "reason", "min_width exceeds max_width")
	}
	if f.MaxHeight > 0 && f.MinHeight > f.MaxHeight {
		return zerr.With(ErrConfigInvalid, "reason", "min_height exceeds max_height")
	}
	return nil
}

// Active reports whether any bound is set. Inactive filters let callers skip
// reading image headers entirely.
func (f DimensionFilters) Active() bool {
	return f != DimensionFilters{}
}

// Allows reports whether an image with the given dimensions passes the
// filters.
func (f DimensionFilters) Allows(width, height int) bool {
	if width < f.MinWidth || height < f.MinHeight {
		return false
	}
	if f.MaxWidth > 0 && width > f.MaxWidth {
		return false
	}
	if f.MaxHeight > 0 && height > f.MaxHeight {
		return false
	}
	return true
}

// Settings is the validated runtime configuration, assembled from defaults,
// the user config file and command line flags.
type Settings struct {
	// CachePath is the location of the fingerprint cache snapshot.
	CachePath string
	// Workers is the fingerprint pool size. Zero means one worker per core.
	Workers int
	// Recursive descends into subdirectories during enumeration.
	Recursive bool
	// Extensions lists the file extensions treated as images, normalized to
	// lowercase with a leading dot.
	Extensions []string
	// Renderer selects the output mode: auto, tui or linear.
	Renderer string
	// Sensitivity is the default matching sensitivity.
	Sensitivity Sensitivity
	// Thresholds maps sensitivity levels to Hamming distances.
	Thresholds Thresholds
	// Filters bound candidate image dimensions.
	Filters DimensionFilters
}

// DefaultExtensions returns the image extensions recognized out of the box.
func DefaultExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}
}

// NormalizeExtensions lowercases extensions and ensures a leading dot,
// dropping empty entries.
func NormalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// DefaultSettings returns the configuration used when no config file exists.
// CachePath is left empty; callers fall back to DefaultCachePath.
func DefaultSettings() Settings {
	return Settings{
		Recursive:   true,
		Extensions:  DefaultExtensions(),
		Renderer:    RendererAuto,
		Sensitivity: SensitivityMedium,
		Thresholds:  DefaultThresholds(),
	}
}

// PoolSize resolves the effective worker count for a requested size,
// defaulting to one worker per core and clamping to the available cores.
func PoolSize(requested int) int {
	cores := runtime.NumCPU()
	if requested <= 0 || requested > cores {
		return cores
	}
	return requested
}

// Validate checks the settings for problems a scan could not recover from.
func (s Settings) Validate() error {
	if s.Workers < 0 {
		return zerr.With(ErrConfigInvalid, "reason", "workers must not be negative")
	}
	switch s.Renderer {
	case RendererAuto, RendererTUI, RendererLinear:
	default:
		return zerr.With(ErrInvalidRenderer, "value", s.Renderer)
	}
	if len(s.Extensions) == 0 {
		return zerr.With(ErrConfigInvalid, "reason", "extensions must not be empty")
	}
	if _, err := ParseSensitivity(string(s.Sensitivity)); err != nil {
		return err
	}
	if err := s.Thresholds.Validate(); err != nil {
		return err
	}
	return s.Filters.Validate()
}
