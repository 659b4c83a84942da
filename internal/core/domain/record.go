package domain

import (
	"strings"
	"time"
)

// ImageRecord identifies one candidate image on disk together with the file
// attributes used for cache validation and filtering.
type ImageRecord struct {
	// Path is the absolute path of the image file.
	Path string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the file's last modification time.
	ModTime time.Time
	// Width is the pixel width read from the image header.
	Width int
	// Height is the pixel height read from the image header.
	Height int
}

// CacheEntry is a persisted fingerprint together with the file identity it
// was computed for.
type CacheEntry struct {
	Size        int64
	ModTime     time.Time
	Fingerprint Fingerprint
}

// Matches reports whether the entry still describes rec. Size and
// modification time must both match exactly; any change invalidates the
// entry and forces a recompute. Paths that merely moved are treated as new
// files.
func (e CacheEntry) Matches(rec ImageRecord) bool {
	return e.Size == rec.Size && e.ModTime.Equal(rec.ModTime)
}

// Issue records a per-file or per-folder problem that was skipped over
// instead of aborting the scan.
type Issue struct {
	Path string
	Err  error
}

// ScanRequest describes one duplicate scan.
type ScanRequest struct {
	// Folders are the directories to search for images.
	Folders []string
	// Recursive descends into subdirectories when set.
	Recursive bool
	// Sensitivity selects the matching threshold.
	Sensitivity Sensitivity
	// Extensions are the file extensions (leading dot, any case) treated as
	// images. Empty means DefaultExtensions.
	Extensions []string
	// Filters bounds the pixel dimensions of candidate images.
	Filters DimensionFilters
	// Workers is the fingerprint pool size. Zero means one worker per core.
	Workers int
	// NoCache forces fresh fingerprints for every image. The recomputed
	// entries still replace the snapshot on flush.
	NoCache bool
}

// Validate checks the request for problems that should fail fast.
func (r ScanRequest) Validate() error {
	if len(r.Folders) == 0 {
		return ErrNoFoldersSpecified
	}
	return r.Filters.Validate()
}

// ExtensionSet returns the extension filter as a lower-case lookup set,
// falling back to DefaultExtensions when the request names none.
func (r ScanRequest) ExtensionSet() map[string]struct{} {
	exts := r.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

// ScanStats summarizes what a scan did.
type ScanStats struct {
	// Candidates is the number of images that passed enumeration filters.
	Candidates int
	// CacheHits is the number of fingerprints served from the cache.
	CacheHits int
	// Computed is the number of fingerprints computed this run.
	Computed int
	// Failures is the number of images that could not be decoded.
	Failures int
	// Duplicates is the number of images that ended up in a group.
	Duplicates int
	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration
}

// ScanResult is the outcome of a scan. A cancelled scan still returns a
// result covering the subset of images processed before the interrupt.
type ScanResult struct {
	Groups []DuplicateGroup
	Issues []Issue
	Stats  ScanStats
}
