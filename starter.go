package zhconv

import (
	"math/bits"
	"sort"
	"unicode/utf8"
)

// maskWidth is the number of key lengths a starter bitmask can represent
// directly. Bit L of a mask is set iff some key of length L (in UTF-16
// code units) begins with the starter. Lengths >= maskWidth are tracked in
// a sparse overflow list instead; no shipped dictionary needs it, but the
// engine must not silently drop such keys.
const maskWidth = 64

// lengthSet records which key lengths occur for one starter code point.
type lengthSet struct {
	mask uint64
	over []int // lengths >= maskWidth, sorted ascending, deduplicated
}

func (ls *lengthSet) add(length int) {
	assert(length > 0, "key length must be positive")
	if length < maskWidth {
		ls.mask |= 1 << uint(length)
		return
	}
	i := sort.SearchInts(ls.over, length)
	if i < len(ls.over) && ls.over[i] == length {
		return
	}
	ls.over = append(ls.over, 0)
	copy(ls.over[i+1:], ls.over[i:])
	ls.over[i] = length
}

func (ls *lengthSet) merge(other lengthSet) {
	ls.mask |= other.mask
	for _, n := range other.over {
		ls.add(n)
	}
}

// maxLength returns the largest recorded length, or 0 for an empty set.
func (ls lengthSet) maxLength() int {
	if n := len(ls.over); n > 0 {
		return ls.over[n-1]
	}
	if ls.mask == 0 {
		return 0
	}
	return bits.Len64(ls.mask) - 1
}

// forEachDesc calls visit for every recorded length <= cap, from largest
// to smallest, stopping early when visit returns true.
func (ls lengthSet) forEachDesc(cap int, visit func(length int) (done bool)) {
	for i := len(ls.over) - 1; i >= 0; i-- {
		if ls.over[i] > cap {
			continue
		}
		if visit(ls.over[i]) {
			return
		}
	}
	mask := ls.mask
	if cap < maskWidth-1 {
		mask &= (uint64(1) << uint(cap+1)) - 1
	}
	for mask != 0 {
		length := bits.Len64(mask) - 1
		mask &^= uint64(1) << uint(length)
		if visit(length) {
			return
		}
	}
}

// StarterIndex accelerates longest-match lookups for one dictionary: it
// maps the first code point of every key to the set of key lengths that
// begin with it.
type StarterIndex struct {
	starters map[rune]lengthSet
	cap      int // largest key length observed for any starter
}

func newStarterIndex(dict map[string]string) *StarterIndex {
	idx := &StarterIndex{starters: make(map[rune]lengthSet, len(dict))}
	for k := range dict {
		if k == "" {
			continue
		}
		cp, _ := utf8.DecodeRuneInString(k)
		length := utf16Len(k)
		ls := idx.starters[cp]
		ls.add(length)
		idx.starters[cp] = ls
		if length > idx.cap {
			idx.cap = length
		}
	}
	return idx
}

// Cap returns the largest key length observed for any starter.
func (idx *StarterIndex) Cap() int {
	return idx.cap
}

// Lengths returns the length set recorded for a starter code point.
func (idx *StarterIndex) Lengths(cp rune) (lengthSet, bool) {
	ls, ok := idx.starters[cp]
	return ls, ok
}

// StarterUnion merges the starter indexes of an ordered dictionary group.
// The order is preserved: the segmentation engine consults the group's
// dictionaries front to back, so earlier entries win ties on key length.
type StarterUnion struct {
	dicts    []*DictEntry
	starters map[rune]lengthSet
	maxCap   int // max over MaxLen of the group
}

// BuildUnion merges the given dictionaries. Nil entries are tolerated and
// contribute nothing, so a union over partially loaded slots stays valid.
func BuildUnion(dicts []*DictEntry) *StarterUnion {
	u := &StarterUnion{
		dicts:    dicts,
		starters: make(map[rune]lengthSet),
	}
	for _, d := range dicts {
		if d == nil || d.starters == nil {
			continue
		}
		for cp, ls := range d.starters.starters {
			merged := u.starters[cp]
			merged.merge(ls)
			u.starters[cp] = merged
		}
		if d.MaxLen > u.maxCap {
			u.maxCap = d.MaxLen
		}
	}
	return u
}

// Dicts returns the ordered dictionary group behind the union.
func (u *StarterUnion) Dicts() []*DictEntry {
	return u.dicts
}

// MaxCap returns the largest key length across the whole group.
func (u *StarterUnion) MaxCap() int {
	return u.maxCap
}

// AnyKeyStartsWith is the O(1) early-reject gate of the segmentation inner
// loop: it reports whether any key of any dictionary in the group begins
// with cp.
func (u *StarterUnion) AnyKeyStartsWith(cp rune) bool {
	_, ok := u.starters[cp]
	return ok
}

// Lengths returns the merged length set for a starter code point.
func (u *StarterUnion) Lengths(cp rune) (lengthSet, bool) {
	ls, ok := u.starters[cp]
	return ls, ok
}
