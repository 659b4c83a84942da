// Package config provides the configuration loader for lookalike.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path and merges it over the built-in
// defaults. An empty path means the default location, where a missing file is
// not an error. An explicitly requested file must exist.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := domain.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	// #nosec G304 -- path is provided by user
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			l.Logger.Debug("no config file found, using defaults")
			settings := domain.DefaultSettings()
			return &settings, nil
		}
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	settings := toSettings(file)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// toSettings merges the file contents over the defaults. Absent fields keep
// their default value.
func toSettings(file ConfigFile) domain.Settings {
	settings := domain.DefaultSettings()

	if file.CachePath != "" {
		settings.CachePath = file.CachePath
	}
	if file.Workers != 0 {
		settings.Workers = file.Workers
	}
	if file.Recursive != nil {
		settings.Recursive = *file.Recursive
	}
	if exts := domain.NormalizeExtensions(file.Extensions); len(exts) > 0 {
		settings.Extensions = exts
	}
	if file.Renderer != "" {
		settings.Renderer = file.Renderer
	}
	if file.Sensitivity != "" {
		// Keep the raw value on parse failure so Validate reports it.
		if sensitivity, err := domain.ParseSensitivity(file.Sensitivity); err == nil {
			settings.Sensitivity = sensitivity
		} else {
			settings.Sensitivity = domain.Sensitivity(file.Sensitivity)
		}
	}
	if file.Thresholds != nil {
		settings.Thresholds = *file.Thresholds
	}
	if file.Filters.Active() {
		settings.Filters = file.Filters
	}

	return settings
}
