package ports

import "go.trai.ch/lookalike/internal/core/domain"

// ConfigLoader defines the interface for loading the user configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and returns validated
	// settings. An empty path means the default location; a missing file at
	// the default location yields the built-in defaults, while an explicitly
	// requested file must exist.
	Load(path string) (*domain.Settings, error)
}
