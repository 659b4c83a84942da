// Package cache implements the persistent fingerprint cache as a single
// JSON snapshot on disk.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/zerr"
)

// SnapshotVersion is the cache file format version. Snapshots written with
// another version are discarded and rebuilt from scratch.
const SnapshotVersion = 1

// snapshot is the on-disk layout of the cache.
type snapshot struct {
	Version int              `json:"version"`
	Scope   string           `json:"scope,omitempty"`
	Entries map[string]entry `json:"entries"`
}

type entry struct {
	Size        int64              `json:"size"`
	ModTime     time.Time          `json:"mtime"`
	Fingerprint domain.Fingerprint `json:"fingerprint"`
}

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore backed by one JSON snapshot.
// Entries live in memory between Flushes; the snapshot on disk is only ever
// replaced whole, never patched.
type Store struct {
	path   string
	logger ports.Logger

	mu      sync.RWMutex
	scope   string
	entries map[string]domain.CacheEntry
}

// NewStore opens the cache at path, loading the previous snapshot when one
// exists. A missing snapshot starts empty. An unreadable or corrupt snapshot
// is discarded with a warning, so a scan can always proceed; the cost is one
// full recompute.
func NewStore(path string, logger ports.Logger) *Store {
	s := &Store{
		path:    path,
		logger:  logger,
		entries: make(map[string]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		s.logger.Warn("starting with an empty fingerprint cache: " + err.Error())
		s.entries = make(map[string]domain.CacheEntry)
		s.scope = ""
	}
	return s
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return zerr.Wrap(err, domain.ErrCacheCorrupt.Error())
	}
	if snap.Version != SnapshotVersion {
		return zerr.With(domain.ErrCacheCorrupt, "version", snap.Version)
	}

	for path, e := range snap.Entries {
		s.entries[path] = domain.CacheEntry{
			Size:        e.Size,
			ModTime:     e.ModTime,
			Fingerprint: e.Fingerprint,
		}
	}
	s.scope = snap.Scope
	return nil
}

// Lookup returns the entry persisted for path, if any.
func (s *Store) Lookup(path string) (domain.CacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[path]
	return e, ok
}

// Put records the entry for path in memory.
func (s *Store) Put(path string, e domain.CacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[path] = e
}

// SetScope records the folder set digest stamped into the next snapshot.
func (s *Store) SetScope(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = scope
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Location returns the snapshot path.
func (s *Store) Location() string {
	return s.path
}

// Flush atomically replaces the on-disk snapshot with the in-memory state.
// The snapshot is staged in a temporary file next to the target and renamed
// into place, so a reader sees either the old or the new snapshot, never a
// torn write.
func (s *Store) Flush() error {
	s.mu.RLock()
	snap := snapshot{
		Version: SnapshotVersion,
		Scope:   s.scope,
		Entries: make(map[string]entry, len(s.entries)),
	}
	for path, e := range s.entries {
		snap.Entries[path] = entry{
			Size:        e.Size,
			ModTime:     e.ModTime,
			Fingerprint: e.Fingerprint,
		}
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Directory sync is best-effort; semantics vary across filesystems.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
