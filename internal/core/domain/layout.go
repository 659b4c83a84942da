package domain

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

const (
	// AppDirName is the name of the per-user directory holding lookalike state.
	AppDirName = "lookalike"

	// CacheFileName is the name of the fingerprint cache snapshot.
	CacheFileName = "fingerprints.json"

	// ConfigFileName is the name of the user configuration file.
	ConfigFileName = "lookalike.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default location of the fingerprint cache,
// rooted in the user cache directory.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate user cache directory")
	}
	return filepath.Join(dir, AppDirName, CacheFileName), nil
}

// DefaultConfigPath returns the default location of the user configuration
// file, rooted in the user config directory.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}
