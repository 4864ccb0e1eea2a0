package relation

import (
	"slices"

	"github.com/samber/lo"
)

// IndexSet is a sorted set of distinct document token offsets.
type IndexSet []int

// NewIndexSet builds a set from offsets in any order.
func NewIndexSet(offsets ...int) IndexSet {
	set := lo.Uniq(offsets)
	slices.Sort(set)
	return IndexSet(set)
}

// Len returns the number of offsets in the set.
func (s IndexSet) Len() int {
	return len(s)
}

// Contains reports whether offset is in the set.
func (s IndexSet) Contains(offset int) bool {
	_, ok := slices.BinarySearch(s, offset)
	return ok
}

// Intersect returns the size of the intersection of s and o.
func (s IndexSet) Intersect(o IndexSet) int {
	n := 0
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] == o[j]:
			n++
			i++
			j++
		case s[i] < o[j]:
			i++
		default:
			j++
		}
	}
	return n
}
