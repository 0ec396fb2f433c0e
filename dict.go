package zhconv

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf16"
)

// DictEntry is a single source→target mapping table together with the
// precomputed extremes of its key lengths.
//
// MaxLen and MinLen are measured in UTF-16 code units, so a key consisting
// of one non-BMP code point has length 2. An empty entry keeps the
// defensive defaults MaxLen = MinLen = 1.
//
// Entries are constructed once at load time and never mutated afterwards;
// the starter index is built eagerly so the entry is safe for concurrent
// readers from the moment it is published.
type DictEntry struct {
	Dict   map[string]string
	MaxLen int
	MinLen int

	starters *StarterIndex
}

// NewDictEntry builds an entry from an existing mapping, computing MaxLen,
// MinLen and the starter index.
func NewDictEntry(dict map[string]string) *DictEntry {
	e := &DictEntry{Dict: dict, MaxLen: 1, MinLen: 1}
	if len(dict) > 0 {
		maxLen, minLen := 0, int(^uint(0)>>1)
		for k := range dict {
			n := utf16Len(k)
			if n > maxLen {
				maxLen = n
			}
			if n < minLen {
				minLen = n
			}
		}
		e.MaxLen, e.MinLen = maxLen, minLen
	}
	e.starters = newStarterIndex(dict)
	return e
}

// Len returns the number of mappings in the entry.
func (e *DictEntry) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Dict)
}

// Starters exposes the starter index computed for this entry.
func (e *DictEntry) Starters() *StarterIndex {
	return e.starters
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n++
		if utf16.IsSurrogate(r) || r > 0xFFFF {
			n++
		}
	}
	return n
}

// runeWidth16 returns the UTF-16 width of a single code point (1 or 2).
func runeWidth16(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// LoadDictEntry parses one plain-text dictionary from r.
//
// Line format: key TAB value, where anything after a further TAB or space
// in the value field is ignored. Blank lines and lines starting with '#'
// or '//' are comments. A BOM on the first line's key is stripped.
// Malformed lines (no TAB, or empty key/value) are skipped with a warning
// on the diagnostic channel; they never abort the load.
func LoadDictEntry(r io.Reader) (*DictEntry, error) {
	dict := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			tracer().Infof("dict line %d malformed (no TAB): %q", lineNo, line)
			continue
		}
		key := line[:tab]
		if lineNo == 1 {
			key = strings.TrimPrefix(key, "\uFEFF")
		}
		val := firstToken(line[tab+1:])
		if key == "" || val == "" {
			tracer().Infof("dict line %d has empty key or value: %q", lineNo, line)
			continue
		}
		dict[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewDictEntry(dict), nil
}

// firstToken trims leading blanks and returns the run up to the next
// space or TAB. Extra tokens on a dictionary line are alternates the
// converter does not use.
func firstToken(rest string) string {
	rest = strings.TrimLeft(rest, " \t")
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		return rest[:end]
	}
	return rest
}
