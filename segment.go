package zhconv

import (
	"runtime"
	"strings"
	"sync"
)

// parallelThreshold is the input size, in UTF-16 code units, above which
// the engine fans the conversion out to parallel workers.
const parallelThreshold = 2000

// minChunk is the smallest chunk the splitter aims for; chunks below this
// cost more in scheduling than they save in scan time.
const minChunk = 512

// segmentReplace rewrites text by longest-match replacement against an
// ordered dictionary group. At every position the longest prefix present
// as a key in some group dictionary is replaced by its value; ties on
// length go to the earliest dictionary holding a key of that length. The
// union must have been built over exactly the given group.
func segmentReplace(text string, dicts []*DictEntry, union *StarterUnion) string {
	if text == "" {
		return ""
	}
	runes, boff, pre16 := decodeUTF16(text)
	n := len(runes)
	if pre16[n] <= parallelThreshold {
		var sb strings.Builder
		sb.Grow(len(text) + len(text)/8)
		convertRange(text, runes, boff, pre16, 0, n, dicts, union, &sb)
		return sb.String()
	}

	ranges := splitRanges(runes, chunkTarget(n))
	if len(ranges) == 1 {
		var sb strings.Builder
		sb.Grow(len(text) + len(text)/8)
		convertRange(text, runes, boff, pre16, 0, n, dicts, union, &sb)
		return sb.String()
	}
	results := make([]string, len(ranges))
	var wg sync.WaitGroup
	for k, rg := range ranges {
		wg.Add(1)
		go func(k, from, to int) {
			defer wg.Done()
			var sb strings.Builder
			sb.Grow(boff[to] - boff[from] + (boff[to]-boff[from])/8)
			convertRange(text, runes, boff, pre16, from, to, dicts, union, &sb)
			results[k] = sb.String()
		}(k, rg[0], rg[1])
	}
	wg.Wait()
	return strings.Join(results, "")
}

// decodeUTF16 indexes text for the scan loop: the code points, the byte
// offset of each code point (with a trailing sentinel) and the running
// UTF-16 offset of each code point (likewise). Candidate slices are then
// plain re-slices of text, with no per-candidate allocation.
func decodeUTF16(text string) (runes []rune, boff []int, pre16 []int) {
	runes = make([]rune, 0, len(text)/3+1)
	boff = make([]int, 0, len(text)/3+2)
	pre16 = make([]int, 0, len(text)/3+2)
	u16 := 0
	for off, r := range text {
		runes = append(runes, r)
		boff = append(boff, off)
		pre16 = append(pre16, u16)
		u16 += runeWidth16(r)
	}
	boff = append(boff, len(text))
	pre16 = append(pre16, u16)
	return runes, boff, pre16
}

// convertRange runs the greedy longest-match scan over runes[from:to],
// appending the rewritten text to sb.
func convertRange(text string, runes []rune, boff, pre16 []int, from, to int,
	dicts []*DictEntry, union *StarterUnion, sb *strings.Builder) {
	//
	i := from
	for i < to {
		cp := runes[i]
		ls, ok := union.Lengths(cp)
		if !ok {
			// gate: no key anywhere in the group starts with cp
			sb.WriteRune(cp)
			i++
			continue
		}
		wide := runeWidth16(cp) == 2
		capHere := union.MaxCap()
		if remaining := pre16[to] - pre16[i]; remaining < capHere {
			capHere = remaining
		}
		next := -1
		ls.forEachDesc(capHere, func(length int) bool {
			if length == 1 && wide {
				// a surrogate pair is atomic; half of it never matches
				return false
			}
			// walk forward until the candidate spans exactly `length`
			// UTF-16 code units; overshoot means a pair straddles the
			// boundary and the length is skipped
			j, acc := i, 0
			for j < to && acc < length {
				acc += runeWidth16(runes[j])
				j++
			}
			if acc != length {
				return false
			}
			candidate := text[boff[i]:boff[j]]
			for _, d := range dicts {
				if d == nil || length > d.MaxLen || length < d.MinLen {
					continue
				}
				if v, ok := d.Dict[candidate]; ok {
					sb.WriteString(v)
					next = j
					return true
				}
			}
			return false
		})
		if next < 0 {
			sb.WriteRune(cp)
			i++
			continue
		}
		i = next
	}
}

// chunkTarget picks a per-chunk size (in code points) for n code points
// spread over the available workers.
func chunkTarget(n int) int {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	target := n / workers
	if target < minChunk {
		target = minChunk
	}
	return target
}

// splitRanges cuts [0,len(runes)) into chunks of roughly target code
// points. A cut is placed only immediately after a delimiter code point,
// so no dictionary match can span a chunk boundary and the concatenated
// chunk outputs are identical to a sequential scan. Cuts are at code-point
// granularity and therefore can never land inside a surrogate pair. A long
// delimiter-free run simply extends its chunk past the target.
func splitRanges(runes []rune, target int) [][2]int {
	var ranges [][2]int
	start := 0
	for k := range runes {
		if k-start+1 >= target && isDelimiter(runes[k]) {
			ranges = append(ranges, [2]int{start, k + 1})
			start = k + 1
		}
	}
	if start < len(runes) {
		ranges = append(ranges, [2]int{start, len(runes)})
	}
	if len(ranges) == 0 {
		ranges = append(ranges, [2]int{0, len(runes)})
	}
	return ranges
}
