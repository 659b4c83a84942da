package ports

import "go.trai.ch/lookalike/internal/core/domain"

// CacheStore defines the interface for the persistent fingerprint cache.
// The store is dumb keyed persistence: it never decides whether an entry is
// still valid, callers check entries against the current file attributes.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Lookup returns the entry persisted for path, if any.
	Lookup(path string) (domain.CacheEntry, bool)

	// Put records the entry for path in memory. It becomes durable on the
	// next Flush.
	Put(path string, entry domain.CacheEntry)

	// SetScope records the digest of the folder set the next snapshot was
	// produced from.
	SetScope(scope string)

	// Len returns the number of entries currently held.
	Len() int

	// Flush atomically replaces the on-disk snapshot with the in-memory
	// state. The previous snapshot stays intact if writing fails.
	Flush() error

	// Location returns the snapshot path, for logging.
	Location() string
}
