package zhconv

import (
	"reflect"
	"strings"
	"testing"
)

func TestStarterIndexMasks(t *testing.T) {
	entry := NewDictEntry(map[string]string{
		"汉":   "漢",
		"汉字":  "漢字",
		"汉字文": "漢字文",
		"发":   "發",
	})
	idx := entry.Starters()
	if idx.Cap() != 3 {
		t.Fatalf("cap = %d, want 3", idx.Cap())
	}
	ls, ok := idx.Lengths('汉')
	if !ok {
		t.Fatal("expected starter entry for 汉")
	}
	wantMask := uint64(1<<1 | 1<<2 | 1<<3)
	if ls.mask != wantMask {
		t.Fatalf("mask = %b, want %b", ls.mask, wantMask)
	}
	if _, ok := idx.Lengths('字'); ok {
		t.Fatal("no key starts with 字; starter entry must be absent")
	}
}

// For every recorded length there must be a key of that length starting
// with the starter — masks never overreport.
func TestStarterUnionQuantifiedInvariant(t *testing.T) {
	d, err := embeddedDictionary()
	if err != nil {
		t.Fatal(err)
	}
	for key := UnionKey(0); key < numUnionKeys; key++ {
		u := d.UnionFor(key)
		for cp, ls := range u.starters {
			witnessed := map[int]bool{}
			for _, entry := range u.Dicts() {
				if entry == nil {
					continue
				}
				for k := range entry.Dict {
					for _, first := range k {
						if first == cp {
							witnessed[utf16Len(k)] = true
						}
						break
					}
				}
			}
			ls.forEachDesc(u.MaxCap(), func(n int) bool {
				if !witnessed[n] {
					t.Fatalf("union %d: starter %q records length %d with no witness key", key, cp, n)
				}
				return false
			})
		}
	}
}

func TestStarterUnionMergesGroups(t *testing.T) {
	chars := NewDictEntry(map[string]string{"汉": "漢"})
	phrases := NewDictEntry(map[string]string{"汉字": "漢字", "简体字": "簡體字"})
	u := BuildUnion([]*DictEntry{phrases, chars})
	if u.MaxCap() != 3 {
		t.Fatalf("maxCap = %d, want 3", u.MaxCap())
	}
	if !u.AnyKeyStartsWith('汉') || !u.AnyKeyStartsWith('简') {
		t.Fatal("union must contain starters of every group member")
	}
	if u.AnyKeyStartsWith('体') {
		t.Fatal("体 starts no key")
	}
	ls, _ := u.Lengths('汉')
	if ls.mask != uint64(1<<1|1<<2) {
		t.Fatalf("merged mask = %b, want %b", ls.mask, uint64(1<<1|1<<2))
	}
	if got := u.Dicts(); !reflect.DeepEqual(got, []*DictEntry{phrases, chars}) {
		t.Fatal("union must preserve group order")
	}
}

func TestBuildUnionToleratesNilEntries(t *testing.T) {
	chars := NewDictEntry(map[string]string{"汉": "漢"})
	u := BuildUnion([]*DictEntry{nil, chars})
	if !u.AnyKeyStartsWith('汉') {
		t.Fatal("nil group member must not suppress the rest")
	}
	if u.MaxCap() != 1 {
		t.Fatalf("maxCap = %d, want 1", u.MaxCap())
	}
}

// Keys longer than the bitmask width are tracked via the overflow set and
// stay matchable.
func TestLengthOverflowBeyondMaskWidth(t *testing.T) {
	long := strings.Repeat("长", 70)
	entry := NewDictEntry(map[string]string{long: "LONG", "长": "長"})
	ls, ok := entry.Starters().Lengths('长')
	if !ok {
		t.Fatal("expected starter entry")
	}
	if len(ls.over) != 1 || ls.over[0] != 70 {
		t.Fatalf("overflow = %v, want [70]", ls.over)
	}
	if ls.maxLength() != 70 {
		t.Fatalf("maxLength = %d, want 70", ls.maxLength())
	}

	var seen []int
	ls.forEachDesc(100, func(n int) bool {
		seen = append(seen, n)
		return false
	})
	if !reflect.DeepEqual(seen, []int{70, 1}) {
		t.Fatalf("descending lengths = %v, want [70 1]", seen)
	}

	u := BuildUnion([]*DictEntry{entry})
	out := segmentReplace(long+"长", u.Dicts(), u)
	if out != "LONG長" {
		t.Fatalf("overflow-length key did not match: %q", out)
	}
}

func TestForEachDescRespectsCap(t *testing.T) {
	var ls lengthSet
	ls.add(1)
	ls.add(4)
	ls.add(16)
	var seen []int
	ls.forEachDesc(4, func(n int) bool {
		seen = append(seen, n)
		return false
	})
	if !reflect.DeepEqual(seen, []int{4, 1}) {
		t.Fatalf("lengths under cap 4 = %v, want [4 1]", seen)
	}
}
