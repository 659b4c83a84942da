package domain

// Member is one image in a duplicate group, annotated with its Hamming
// distance from the group representative.
type Member struct {
	Record   ImageRecord
	Distance int
}

// DuplicateGroup is a set of at least two images that are near-duplicates of
// each other. Membership is transitive: an image belongs to the group when it
// is within threshold of any member, not necessarily of all members.
//
// The first member is the representative (distance zero from itself); the
// rest are ordered by distance from it, with the path breaking ties.
type DuplicateGroup struct {
	Members []Member
}

// Representative returns the image the rest of the group is measured against.
func (g DuplicateGroup) Representative() ImageRecord {
	return g.Members[0].Record
}

// Len returns the number of images in the group.
func (g DuplicateGroup) Len() int {
	return len(g.Members)
}
