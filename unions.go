package zhconv

import "sync/atomic"

// UnionKey names a fixed ordered group of dictionary slots whose merged
// starter data a conversion round runs against.
type UnionKey int

const (
	UnionS2T UnionKey = iota
	UnionS2TPunct
	UnionT2S
	UnionT2SPunct
	UnionTwPhrasesOnly
	UnionTwVariantsOnly
	UnionTwPhrasesRevOnly
	UnionTwRevPair
	UnionTw2SpR1TwRevTriple
	UnionHkVariantsOnly
	UnionHkRevPair
	UnionJpVariantsOnly
	UnionJpRevTriple
	numUnionKeys
)

// unionGroups fixes the ordered dictionary group of every key. Order
// matters: the engine consults the group's dictionaries front to back to
// break ties between keys of equal length.
var unionGroups = [numUnionKeys][]dictSlot{
	UnionS2T:                {slotSTPhrases, slotSTCharacters},
	UnionS2TPunct:           {slotSTPhrases, slotSTCharacters, slotSTPunctuations},
	UnionT2S:                {slotTSPhrases, slotTSCharacters},
	UnionT2SPunct:           {slotTSPhrases, slotTSCharacters, slotTSPunctuations},
	UnionTwPhrasesOnly:      {slotTWPhrases},
	UnionTwVariantsOnly:     {slotTWVariants},
	UnionTwPhrasesRevOnly:   {slotTWPhrasesRev},
	UnionTwRevPair:          {slotTWVariantsRevPhrases, slotTWVariantsRev},
	UnionTw2SpR1TwRevTriple: {slotTWPhrasesRev, slotTWVariantsRevPhrases, slotTWVariantsRev},
	UnionHkVariantsOnly:     {slotHKVariants},
	UnionHkRevPair:          {slotHKVariantsRevPhrases, slotHKVariantsRev},
	UnionJpVariantsOnly:     {slotJPVariants},
	UnionJpRevTriple:        {slotJPSPhrases, slotJPSCharacters, slotJPVariantsRev},
}

// unionCache holds the lazily built StarterUnion of every UnionKey.
//
// Slots are installed with compare-and-set: concurrent first readers may
// both build a union, one installs it, the loser discards its build and
// adopts the winner. ClearUnions swaps the whole slot array, so a clear
// racing a conversion only costs later rebuilds.
type unionCache struct {
	slots atomic.Pointer[[numUnionKeys]atomic.Pointer[StarterUnion]]
}

func (c *unionCache) array() *[numUnionKeys]atomic.Pointer[StarterUnion] {
	if a := c.slots.Load(); a != nil {
		return a
	}
	fresh := new([numUnionKeys]atomic.Pointer[StarterUnion])
	if c.slots.CompareAndSwap(nil, fresh) {
		return fresh
	}
	return c.slots.Load()
}

// UnionFor returns the StarterUnion for key, building and caching it on
// first use.
func (d *Dictionary) UnionFor(key UnionKey) *StarterUnion {
	assert(key >= 0 && key < numUnionKeys, "union key out of range")
	slots := d.unions.array()
	if u := slots[key].Load(); u != nil {
		return u
	}
	built := BuildUnion(d.entries(unionGroups[key]))
	if slots[key].CompareAndSwap(nil, built) {
		tracer().Debugf("built starter union %d over %d dicts", key, len(built.dicts))
		return built
	}
	return slots[key].Load()
}

// ClearUnions drops every cached union; subsequent rounds rebuild lazily.
// Safe to call concurrently with conversions.
func (d *Dictionary) ClearUnions() {
	d.unions.slots.Store(new([numUnionKeys]atomic.Pointer[StarterUnion]))
}
