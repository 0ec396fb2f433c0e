package zhconv

// The delimiter set marks the code points at which the parallel driver may
// split the input into independent chunks. Membership is fixed:
//
//	U+0009..U+000D  TAB LF VT FF CR
//	U+0020          SPACE
//	U+0021..U+002F  ! " # $ % & ' ( ) * + , - . /
//	U+003A..U+0040  : ; < = > ? @
//	U+005B..U+0060  [ \ ] ^ _ `
//	U+007B..U+007E  { | } ~
//	U+2014          — EM DASH
//	U+2018 U+2019   ' '
//	U+201C U+201D   " "
//	U+2026          … HORIZONTAL ELLIPSIS
//	U+2028 U+2029   LINE SEPARATOR, PARAGRAPH SEPARATOR
//	U+3000          IDEOGRAPHIC SPACE
//	U+3001 U+3002   、 。
//	U+3008..U+3011  〈 〉 《 》 「 」 『 』 【 】
//	U+3014 U+3015   〔 〕
//	U+FF01          ！
//	U+FF08 U+FF09   （ ）
//	U+FF0C U+FF0E   ， ．
//	U+FF1A U+FF1B   ： ；
//	U+FF1F          ？
//
// Code points below 0x80 are tested against a two-word bit array, the
// U+3000..U+303F band against a single 64-bit word, everything else
// against a small hash set.

// asciiDelims has bit c set for every ASCII delimiter code point c.
var asciiDelims = [2]uint64{
	1<<0x09 | 1<<0x0A | 1<<0x0B | 1<<0x0C | 1<<0x0D |
		1<<0x20 | 1<<0x21 | 1<<0x22 | 1<<0x23 | 1<<0x24 | 1<<0x25 | 1<<0x26 |
		1<<0x27 | 1<<0x28 | 1<<0x29 | 1<<0x2A | 1<<0x2B | 1<<0x2C | 1<<0x2D |
		1<<0x2E | 1<<0x2F | 1<<0x3A | 1<<0x3B | 1<<0x3C | 1<<0x3D | 1<<0x3E |
		1<<0x3F,
	1<<(0x40-64) |
		1<<(0x5B-64) | 1<<(0x5C-64) | 1<<(0x5D-64) | 1<<(0x5E-64) |
		1<<(0x5F-64) | 1<<(0x60-64) |
		1<<(0x7B-64) | 1<<(0x7C-64) | 1<<(0x7D-64) | 1<<(0x7E-64),
}

// cjkBandDelims covers U+3000..U+303F with bit (c - 0x3000).
const cjkBandDelims uint64 = 1<<0x00 | 1<<0x01 | 1<<0x02 |
	1<<0x08 | 1<<0x09 | 1<<0x0A | 1<<0x0B | 1<<0x0C | 1<<0x0D |
	1<<0x0E | 1<<0x0F | 1<<0x10 | 1<<0x11 | 1<<0x14 | 1<<0x15

// otherDelims catches the delimiters outside both dense tables.
var otherDelims = map[rune]struct{}{
	'—': {}, '‘': {}, '’': {}, '“': {}, '”': {},
	'…': {}, '\u2028': {}, '\u2029': {},
	'！': {}, '（': {}, '）': {}, '，': {}, '．': {},
	'：': {}, '；': {}, '？': {},
}

// isDelimiter reports whether cp is a permissible split point.
func isDelimiter(cp rune) bool {
	if cp < 0x80 {
		return asciiDelims[cp>>6]&(1<<uint(cp&63)) != 0
	}
	if cp >= 0x3000 && cp < 0x3040 {
		return cjkBandDelims&(1<<uint(cp-0x3000)) != 0
	}
	_, ok := otherDelims[cp]
	return ok
}
