// Package grouper clusters fingerprinted images into groups of near duplicates.
package grouper

import (
	"cmp"
	"slices"
	"strings"

	"go.trai.ch/lookalike/internal/core/domain"
)

// Fingerprinted pairs an image record with its computed fingerprint.
type Fingerprinted struct {
	Record      domain.ImageRecord
	Fingerprint domain.Fingerprint
}

// Group clusters images whose fingerprints are within threshold bits of each
// other. Matching is transitive: if a matches b and b matches c, all three
// end up in one group even when a and c are further apart than the
// threshold. Images that match nothing are dropped.
//
// The result is deterministic regardless of input order: each group is led
// by its lexicographically smallest path, members are ordered by distance
// from that representative with the path breaking ties, and groups are
// ordered by representative path.
func Group(images []Fingerprinted, threshold int) []domain.DuplicateGroup {
	if len(images) < 2 {
		return nil
	}

	sorted := slices.Clone(images)
	slices.SortFunc(sorted, func(a, b Fingerprinted) int {
		return strings.Compare(a.Record.Path, b.Record.Path)
	})

	sets := newDisjointSets(len(sorted))
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i].Fingerprint.Distance(sorted[j].Fingerprint) <= threshold {
				sets.union(i, j)
			}
		}
	}

	// Walking indices in path order makes the first index of every component
	// its lexicographically smallest path, which leads the group.
	components := make(map[int][]int)
	var order []int
	for i := range sorted {
		root := sets.find(i)
		if _, seen := components[root]; !seen {
			order = append(order, root)
		}
		components[root] = append(components[root], i)
	}

	var groups []domain.DuplicateGroup
	for _, root := range order {
		indices := components[root]
		if len(indices) < 2 {
			continue
		}

		rep := sorted[indices[0]]
		members := make([]domain.Member, 0, len(indices))
		for _, idx := range indices {
			members = append(members, domain.Member{
				Record:   sorted[idx].Record,
				Distance: rep.Fingerprint.Distance(sorted[idx].Fingerprint),
			})
		}
		slices.SortFunc(members, func(a, b domain.Member) int {
			if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
				return c
			}
			return strings.Compare(a.Record.Path, b.Record.Path)
		})

		groups = append(groups, domain.DuplicateGroup{Members: members})
	}
	return groups
}

// disjointSets is a union-find over integer indices with path halving and
// union by rank.
type disjointSets struct {
	parent []int
	rank   []int
}

func newDisjointSets(n int) *disjointSets {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSets{parent: parent, rank: make([]int, n)}
}

func (d *disjointSets) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSets) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}
