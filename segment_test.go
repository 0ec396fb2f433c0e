package zhconv

import (
	"strings"
	"testing"
)

func replaceAll(text string, dicts ...*DictEntry) string {
	u := BuildUnion(dicts)
	return segmentReplace(text, u.Dicts(), u)
}

func TestSegmentReplaceGreedyLongestMatch(t *testing.T) {
	d := NewDictEntry(map[string]string{
		"汉":   "A",
		"汉字":  "B",
		"汉字文": "C",
	})
	cases := []struct{ in, want string }{
		{"汉", "A"},
		{"汉字", "B"},
		{"汉字文", "C"},
		{"汉字文汉字汉x", "CBAx"},
		{"x汉字y", "xBy"},
	}
	for _, c := range cases {
		if got := replaceAll(c.in, d); got != c.want {
			t.Fatalf("replace(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Ties on length go to the earliest dictionary in the group.
func TestSegmentReplaceDictionaryPriority(t *testing.T) {
	first := NewDictEntry(map[string]string{"汉字": "FIRST"})
	second := NewDictEntry(map[string]string{"汉字": "SECOND", "汉字文": "LONGER"})
	if got := replaceAll("汉字", first, second); got != "FIRST" {
		t.Fatalf("tie broke to %q, want FIRST", got)
	}
	// a longer key in a later dictionary still wins over a shorter one
	if got := replaceAll("汉字文", first, second); got != "LONGER" {
		t.Fatalf("got %q, want LONGER", got)
	}
}

func TestSegmentReplaceBoundaries(t *testing.T) {
	d := NewDictEntry(map[string]string{"汉字": "B"})
	if got := replaceAll("", d); got != "" {
		t.Fatalf("empty input → %q", got)
	}
	delims := " ，。！？「」\t\n"
	if got := replaceAll(delims, d); got != delims {
		t.Fatalf("all-delimiter input must be identity, got %q", got)
	}
	// key truncated at end of input must not match
	if got := replaceAll("文汉", d); got != "文汉" {
		t.Fatalf("truncated key matched: %q", got)
	}
}

func TestSegmentReplaceSurrogatePairs(t *testing.T) {
	d := NewDictEntry(map[string]string{
		"𠀀":   "X",  // U+20000, two code units
		"𠀀好":  "Y",
		"好𠀀好": "Z",
	})
	cases := []struct{ in, want string }{
		{"𠀀", "X"},
		{"𠀀好", "Y"},
		{"好𠀀好", "Z"},
		{"a𠀀b", "aXb"},
		{"𠀀𠀀好", "XY"},
	}
	for _, c := range cases {
		if got := replaceAll(c.in, d); got != c.want {
			t.Fatalf("replace(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// A single-unit key must never match half of a surrogate pair: 干 maps,
// but the pair 𢀀 containing no mapping stays whole.
func TestSegmentReplaceKeepsPairsAtomic(t *testing.T) {
	d := NewDictEntry(map[string]string{"干": "乾", "𠀀干": "P"})
	if got := replaceAll("𢀀干", d); got != "𢀀乾" {
		t.Fatalf("got %q, want %q", got, "𢀀乾")
	}
	if got := replaceAll("𠀀干", d); got != "P" {
		t.Fatalf("got %q, want P", got)
	}
}

func TestSegmentReplaceParallelMatchesSequential(t *testing.T) {
	d, err := embeddedDictionary()
	if err != nil {
		t.Fatal(err)
	}
	u := d.UnionFor(UnionS2T)
	base := "“数大”便是美，碧绿的山坡前几千只绵羊，挨成一片的雪绒，是美；"
	big := strings.Repeat(base, 400) // well past the parallel threshold

	// sequential reference via a single full-range scan
	runes, boff, pre16 := decodeUTF16(big)
	var sb strings.Builder
	convertRange(big, runes, boff, pre16, 0, len(runes), u.Dicts(), u, &sb)
	want := sb.String()

	for i := 0; i < 4; i++ {
		if got := segmentReplace(big, u.Dicts(), u); got != want {
			t.Fatalf("parallel output differs from sequential scan (run %d)", i)
		}
	}
}

func TestSplitRangesCutsAfterDelimiters(t *testing.T) {
	text := strings.Repeat("汉字汉字，", 100)
	runes := []rune(text)
	ranges := splitRanges(runes, 17)
	if len(ranges) < 2 {
		t.Fatalf("expected several chunks, got %d", len(ranges))
	}
	prevEnd := 0
	for i, rg := range ranges {
		if rg[0] != prevEnd {
			t.Fatalf("chunk %d starts at %d, want %d", i, rg[0], prevEnd)
		}
		prevEnd = rg[1]
		if i < len(ranges)-1 && !isDelimiter(runes[rg[1]-1]) {
			t.Fatalf("chunk %d does not end after a delimiter", i)
		}
	}
	if prevEnd != len(runes) {
		t.Fatalf("chunks end at %d, want %d", prevEnd, len(runes))
	}
}

func TestSplitRangesWithoutDelimiters(t *testing.T) {
	runes := []rune(strings.Repeat("汉", 5000))
	ranges := splitRanges(runes, 512)
	if len(ranges) != 1 || ranges[0] != [2]int{0, 5000} {
		t.Fatalf("delimiter-free input must stay one chunk, got %v", ranges)
	}
}

func TestIsDelimiterTable(t *testing.T) {
	for _, cp := range " \t\n\r,.!?;:()[]{}、。「」『』《》〈〉【】〔〕，．：；？！（）—‘’“”…  " {
		if !isDelimiter(cp) {
			t.Fatalf("%q (U+%04X) must be a delimiter", cp, cp)
		}
	}
	for _, cp := range "a0汉字𠀀あネ" {
		if isDelimiter(cp) {
			t.Fatalf("%q must not be a delimiter", cp)
		}
	}
}
