/*
Package zhconv converts between variants of written Chinese (Simplified ↔
Traditional) and their regional forms (Taiwan, Hong Kong) plus Japanese
Shinjitai.

It is a pure text transformation engine: given an input string and a named
configuration such as "s2t" or "tw2sp", it produces a rewritten string in
which every longest-matching lexical unit (phrase or single code point) is
replaced by its variant equivalent, with optional punctuation mapping.

Dictionaries are loaded once into immutable in-memory maps. Each dictionary
carries a starter index: a map from the first code point of a key to a
bitmask of the key lengths beginning with it. Conversion pipelines merge
these indexes into per-round unions which gate the longest-match scan, so
the hot loop touches the hash maps only for plausible candidates. Large
inputs are split at punctuation boundaries and converted on parallel
workers; the split is transparent and the output is identical to a
sequential scan.

All lengths and positions are measured in UTF-16 code units: non-BMP code
points count as 2 and are never split between a matched segment and the
next.

Further reading

	https://github.com/BYVoid/OpenCC  (dictionary data and config lineage)
*/
package zhconv

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zhconv'
func tracer() tracing.Trace {
	return tracing.Select("zhconv")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
