package domain

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// ScanScope returns a short stable digest identifying a folder set,
// independent of ordering and duplicates. It is logged per scan and stamped
// into cache snapshots so stale-cache reports can be tied back to the folders
// that produced them.
func ScanScope(folders []string) string {
	sorted := slices.Clone(folders)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	hasher := xxhash.New()
	for _, folder := range sorted {
		_, _ = hasher.WriteString(folder)
		_, _ = hasher.Write([]byte{0}) // Separator
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
