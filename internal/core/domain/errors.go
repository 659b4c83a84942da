package domain

import "go.trai.ch/zerr"

var (
	// ErrImageDecodeFailed is returned when an image cannot be opened or decoded.
	ErrImageDecodeFailed = zerr.New("failed to decode image")

	// ErrFingerprintFailed is returned when computing a fingerprint from a decoded image fails.
	ErrFingerprintFailed = zerr.New("failed to compute fingerprint")

	// ErrFolderUnreadable is returned when a scan folder cannot be read.
	ErrFolderUnreadable = zerr.New("folder is not readable")

	// ErrNoFoldersSpecified is returned when a scan is requested without any folders.
	ErrNoFoldersSpecified = zerr.New("no folders specified")

	// ErrCacheReadFailed is returned when the fingerprint cache cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read fingerprint cache")

	// ErrCacheCorrupt is returned when the fingerprint cache cannot be parsed.
	ErrCacheCorrupt = zerr.New("fingerprint cache is corrupt")

	// ErrCacheWriteFailed is returned when the fingerprint cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write fingerprint cache")

	// ErrCacheRemoveFailed is returned when the fingerprint cache cannot be removed.
	ErrCacheRemoveFailed = zerr.New("failed to remove fingerprint cache")

	// ErrPoolStart is returned when the fingerprint worker pool cannot be started.
	ErrPoolStart = zerr.New("failed to start worker pool")

	// ErrScanInterrupted is returned when a scan is cancelled before all images are processed.
	ErrScanInterrupted = zerr.New("scan interrupted")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config contains invalid settings.
	ErrConfigInvalid = zerr.New("invalid config")

	// ErrInvalidSensitivity is returned when a sensitivity name is not recognized.
	ErrInvalidSensitivity = zerr.New("invalid sensitivity, expected 'high', 'medium' or 'low'")

	// ErrInvalidFingerprint is returned when a serialized fingerprint cannot be parsed.
	ErrInvalidFingerprint = zerr.New("invalid fingerprint")

	// ErrInvalidRenderer is returned when a renderer mode is not recognized.
	ErrInvalidRenderer = zerr.New("invalid renderer, expected 'auto', 'tui' or 'linear'")
)
