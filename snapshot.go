package zhconv

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sugawarayuuta/sonnet"
)

// The snapshot is the serialized JSON form of the full dictionary set:
// a single top-level object whose values are three-element arrays
//
//	"<name>": [ { "k": "v", ... }, maxLen, minLen ]
//
// The pretty writer output is the canonical on-disk form: two-space
// indent, one mapping per line, keys ordered by (UTF-16 length, key) so
// snapshots are reproducible byte for byte. The compact form has no
// whitespace and implementation-defined iteration order.
//
// The reader is deliberately schema-specific rather than a generic JSON
// decoder: it fails fast with the parse position and a short context
// window, and it rejects the legacy two-element form [dict, maxLen]
// outright. See DESIGN.md.

// SnapshotFile is the conventional filename of a serialized dictionary set.
const SnapshotFile = "dictionary_maxlength.json"

// FromJSON parses a snapshot and populates a Dictionary. Unknown
// top-level keys are ignored with a warning on the diagnostic channel.
func FromJSON(data []byte) (*Dictionary, error) {
	all, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}
	d := &Dictionary{}
	for name, entry := range all {
		s, ok := slotByName(name)
		if !ok {
			tracer().Infof("ignoring unknown dict key in snapshot: %q", name)
			continue
		}
		*d.slot(s) = entry
	}
	return d, nil
}

// FromJSONFile reads and parses a snapshot file (UTF-8).
func FromJSONFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return FromJSON(data)
}

// ParseSnapshot parses a snapshot into named entries, preserving unknown
// top-level keys for the caller to decide on.
func ParseSnapshot(data []byte) (map[string]*DictEntry, error) {
	p := &snapshotParser{s: string(data)}
	return p.parse()
}

type snapshotParser struct {
	s string
	i int
}

func (p *snapshotParser) parse() (map[string]*DictEntry, error) {
	out := make(map[string]*DictEntry)
	p.skipWS()
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	p.skipWS()
	if p.peek('}') {
		p.i++
		p.skipWS()
		if err := p.ensureEOF(); err != nil {
			return nil, err
		}
		return out, nil
	}
	for {
		p.skipWS()
		key, err := p.readString()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		p.skipWS()
		entry, err := p.readEntryArray()
		if err != nil {
			return nil, err
		}
		out[key] = entry
		p.skipWS()
		if p.peek(',') {
			p.i++
			continue
		}
		if p.peek('}') {
			p.i++
			break
		}
		return nil, p.errorf("expected ',' or '}' after top-level entry")
	}
	p.skipWS()
	if err := p.ensureEOF(); err != nil {
		return nil, err
	}
	return out, nil
}

// readEntryArray reads [ {k:v,...}, maxLen, minLen ]. The legacy
// two-element form is a schema error, not a fallback.
func (p *snapshotParser) readEntryArray() (*DictEntry, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	p.skipWS()
	dict, err := p.readStringMap()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expect(','); err != nil {
		return nil, err
	}
	p.skipWS()
	maxLen, err := p.readInt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if p.peek(']') {
		return nil, p.errorf("legacy two-element snapshot form [dict, maxLen] is not supported")
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	p.skipWS()
	minLen, err := p.readInt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	if maxLen > 0 && minLen > maxLen {
		return nil, p.errorf("minLen %d exceeds maxLen %d", minLen, maxLen)
	}
	entry := &DictEntry{Dict: dict, MaxLen: maxLen, MinLen: minLen}
	entry.starters = newStarterIndex(dict)
	return entry, nil
}

func (p *snapshotParser) readStringMap() (map[string]string, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	m := make(map[string]string)
	p.skipWS()
	if p.peek('}') {
		p.i++
		return m, nil
	}
	for {
		k, err := p.readString()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		p.skipWS()
		v, err := p.readString()
		if err != nil {
			return nil, err
		}
		m[k] = v
		p.skipWS()
		if p.peek(',') {
			p.i++
			p.skipWS()
			continue
		}
		if p.peek('}') {
			p.i++
			return m, nil
		}
		return nil, p.errorf("expected ',' or '}' in object")
	}
}

func (p *snapshotParser) readString() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if p.i >= len(p.s) {
			return "", p.errorf("unterminated string")
		}
		c := p.s[p.i]
		p.i++
		if c == '"' {
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if p.i >= len(p.s) {
			return "", p.errorf("bad escape")
		}
		e := p.s[p.i]
		p.i++
		switch e {
		case '"', '\\', '/':
			b.WriteByte(e)
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if p.i+4 > len(p.s) {
				return "", p.errorf("incomplete \\uXXXX escape")
			}
			code, err := strconv.ParseUint(p.s[p.i:p.i+4], 16, 32)
			if err != nil {
				return "", p.errorf("bad \\uXXXX escape")
			}
			p.i += 4
			r := rune(code)
			if r >= 0xD800 && r < 0xDC00 {
				// high surrogate: require the paired low half
				if p.i+6 > len(p.s) || p.s[p.i] != '\\' || p.s[p.i+1] != 'u' {
					return "", p.errorf("unpaired surrogate escape")
				}
				low, err := strconv.ParseUint(p.s[p.i+2:p.i+6], 16, 32)
				if err != nil || low < 0xDC00 || low > 0xDFFF {
					return "", p.errorf("unpaired surrogate escape")
				}
				p.i += 6
				r = 0x10000 + (r-0xD800)<<10 + (rune(low) - 0xDC00)
			}
			b.WriteRune(r)
		default:
			return "", p.errorf("bad escape: \\%c", e)
		}
	}
}

func (p *snapshotParser) readInt() (int, error) {
	start := p.i
	for p.i < len(p.s) && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		p.i++
	}
	if p.i == start {
		return 0, p.errorf("expected non-negative integer")
	}
	n, err := strconv.Atoi(p.s[start:p.i])
	if err != nil {
		return 0, p.errorf("invalid integer")
	}
	return n, nil
}

func (p *snapshotParser) skipWS() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\r', '\n':
			p.i++
		default:
			return
		}
	}
}

func (p *snapshotParser) expect(c byte) error {
	if p.i >= len(p.s) || p.s[p.i] != c {
		return p.errorf("expected %q", string(c))
	}
	p.i++
	return nil
}

func (p *snapshotParser) peek(c byte) bool {
	return p.i < len(p.s) && p.s[p.i] == c
}

func (p *snapshotParser) ensureEOF() error {
	if p.i < len(p.s) {
		return p.errorf("trailing data")
	}
	return nil
}

// errorf builds a parse error carrying the position and ~16 characters of
// surrounding context.
func (p *snapshotParser) errorf(format string, args ...interface{}) error {
	from := p.i - 16
	if from < 0 {
		from = 0
	}
	to := p.i + 16
	if to > len(p.s) {
		to = len(p.s)
	}
	ctx := strings.ReplaceAll(p.s[from:to], "\n", "\\n")
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("snapshot: %s at pos %d near %q", msg, p.i, ctx)
}

// --- writers ---------------------------------------------------------------

// WriteJSON serializes the dictionary set to w. Pretty mode emits the
// canonical reproducible form; compact mode emits minimal JSON in
// implementation-defined order. Nil slots are omitted in both modes.
func (d *Dictionary) WriteJSON(w io.Writer, pretty bool) error {
	if !pretty {
		data, err := sonnet.Marshal(d.snapshotMap())
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	var b strings.Builder
	b.WriteString("{\n")
	first := true
	for s := dictSlot(0); s < numDictSlots; s++ {
		entry := *d.slot(s)
		if entry == nil {
			continue
		}
		if !first {
			b.WriteString(",\n")
		}
		first = false
		writePrettyEntry(&b, slotNames[s], entry)
	}
	b.WriteString("\n}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// SaveJSON writes the snapshot to a file (UTF-8).
func (d *Dictionary) SaveJSON(path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := d.WriteJSON(f, pretty); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// snapshotMap collects the populated slots under their snapshot names.
func (d *Dictionary) snapshotMap() map[string]*DictEntry {
	m := make(map[string]*DictEntry, numDictSlots)
	for s := dictSlot(0); s < numDictSlots; s++ {
		if entry := *d.slot(s); entry != nil {
			m[slotNames[s]] = entry
		}
	}
	return m
}

// MarshalJSON emits the compact three-element array form of an entry.
// The mapping object itself goes through sonnet.
func (e *DictEntry) MarshalJSON() ([]byte, error) {
	dict, err := sonnet.Marshal(e.Dict)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.Grow(len(dict) + 16)
	b.WriteByte('[')
	b.Write(dict)
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(e.MaxLen))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(e.MinLen))
	b.WriteByte(']')
	return []byte(b.String()), nil
}

func writePrettyEntry(b *strings.Builder, name string, entry *DictEntry) {
	b.WriteString("  \"")
	writeJSONString(b, name)
	b.WriteString("\": [ {\n")
	keys := make([]string, 0, len(entry.Dict))
	for k := range entry.Dict {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf16Len(keys[i]), utf16Len(keys[j])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})
	for i, k := range keys {
		b.WriteString("    \"")
		writeJSONString(b, k)
		b.WriteString("\": \"")
		writeJSONString(b, entry.Dict[k])
		b.WriteString("\"")
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "  }, %d, %d ]", entry.MaxLen, entry.MinLen)
}

// writeJSONString escapes s with the minimal JSON escape set; non-ASCII
// is emitted raw.
func writeJSONString(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
}
