// Package fs provides the file system adapter that discovers candidate
// images on disk.
package fs

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Enumerator = (*Enumerator)(nil)

// Enumerator walks scan folders and collects image records.
type Enumerator struct {
	source ports.ImageSource
	logger ports.Logger
}

// NewEnumerator creates a new Enumerator. The image source is used to read
// pixel dimensions from file headers when the request carries dimension
// filters.
func NewEnumerator(source ports.ImageSource, logger ports.Logger) *Enumerator {
	return &Enumerator{source: source, logger: logger}
}

// Enumerate walks the requested folders and returns the images that pass the
// extension and dimension filters. Records are sorted by path and
// deduplicated, so overlapping folders cannot produce the same file twice.
// An unreadable folder becomes an issue rather than a failed scan; only
// cancellation aborts the walk.
func (e *Enumerator) Enumerate(ctx context.Context, req domain.ScanRequest) ([]domain.ImageRecord, []domain.Issue, error) {
	extensions := req.ExtensionSet()

	var (
		records []domain.ImageRecord
		issues  []domain.Issue
	)

	for _, folder := range req.Folders {
		recs, iss, err := e.walkFolder(ctx, folder, req.Recursive, extensions)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, recs...)
		issues = append(issues, iss...)
	}

	records = dedupe(records)

	if req.Filters.Active() {
		records, issues = e.filterDimensions(ctx, records, issues, req.Filters)
	}

	return records, issues, nil
}

// walkFolder collects the image files under one folder. The returned error is
// non-nil only when ctx was cancelled; everything else is downgraded to an
// issue on the folder or the offending entry.
func (e *Enumerator) walkFolder(ctx context.Context, folder string, recursive bool, extensions map[string]struct{}) ([]domain.ImageRecord, []domain.Issue, error) {
	var (
		records []domain.ImageRecord
		issues  []domain.Issue
	)

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			issues = append(issues, domain.Issue{
				Path: path,
				Err:  zerr.Wrap(err, domain.ErrFolderUnreadable.Error()),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// Hidden directories such as .git or .thumbnails never hold
			// images the user wants compared.
			if path != folder && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !recursive && path != folder {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := extensions[ext]; !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			issues = append(issues, domain.Issue{
				Path: path,
				Err:  zerr.Wrap(err, "failed to stat file"),
			})
			return nil
		}

		records = append(records, domain.ImageRecord{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return records, issues, nil
}

// filterDimensions reads the image header of every record and drops the ones
// whose pixel dimensions fall outside the requested bounds. Headers that
// cannot be read turn into issues; the file is skipped rather than guessed
// at.
func (e *Enumerator) filterDimensions(ctx context.Context, records []domain.ImageRecord, issues []domain.Issue, filters domain.DimensionFilters) ([]domain.ImageRecord, []domain.Issue) {
	kept := records[:0]
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}

		width, height, err := e.source.Dimensions(rec.Path)
		if err != nil {
			issues = append(issues, domain.Issue{Path: rec.Path, Err: err})
			continue
		}
		if !filters.Allows(width, height) {
			e.logger.Debug("skipping " + rec.Path + ": dimensions outside filter")
			continue
		}

		rec.Width = width
		rec.Height = height
		kept = append(kept, rec)
	}
	return kept, issues
}

// dedupe sorts records by path and removes duplicates so overlapping folders
// are harmless.
func dedupe(records []domain.ImageRecord) []domain.ImageRecord {
	slices.SortFunc(records, func(a, b domain.ImageRecord) int {
		return strings.Compare(a.Path, b.Path)
	})
	return slices.CompactFunc(records, func(a, b domain.ImageRecord) bool {
		return a.Path == b.Path
	})
}
