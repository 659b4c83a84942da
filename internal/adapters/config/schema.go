package config

import "go.trai.ch/lookalike/internal/core/domain"

// ConfigFile represents the structure of the lookalike.yaml configuration
// file. Pointer fields distinguish "absent" from a zero value where the
// default is not the zero value.
type ConfigFile struct {
	CachePath   string                  `yaml:"cache_path"`
	Workers     int                     `yaml:"workers"`
	Recursive   *bool                   `yaml:"recursive"`
	Extensions  []string                `yaml:"extensions"`
	Renderer    string                  `yaml:"renderer"`
	Sensitivity string                  `yaml:"sensitivity"`
	Thresholds  *domain.Thresholds      `yaml:"thresholds"`
	Filters     domain.DimensionFilters `yaml:"filters"`
}
