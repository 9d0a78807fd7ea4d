// Package cellwidth computes the terminal column width of code points and
// walks UTF-8 byte buffers by character boundary. internal/display's
// vertical layout takes its cell widths from this package.
package cellwidth

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Width returns the number of terminal columns a code point occupies: 0, 1,
// or 2. Combining marks in the ranges below are forced to 0 even though some
// legacy East-Asian width tables report them as 1; clink's display engine
// never wants them consuming a cell of their own.
func Width(r rune) int {
	if isZeroWidthCombining(r) {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// zeroWidthRanges lists the combining-mark blocks that must report width 0
// regardless of what the underlying table says, versioned here rather than
// left implicit.
var zeroWidthRanges = [][2]rune{
	{0x0300, 0x036F}, // Combining Diacritical Marks
	{0x0483, 0x0489}, // Cyrillic combining marks
	{0x0591, 0x05BD}, // Hebrew points
	{0x05BF, 0x05BF},
	{0x05C1, 0x05C2},
	{0x05C4, 0x05C5},
	{0x05C7, 0x05C7},
	{0x0610, 0x061A}, // Arabic marks
	{0x064B, 0x065F},
	{0x0670, 0x0670},
	{0x06D6, 0x06DC},
	{0x06DF, 0x06E4},
	{0x06E7, 0x06E8},
	{0x06EA, 0x06ED},
	{0x0E31, 0x0E31}, // Thai
	{0x0E34, 0x0E3A},
	{0x0E47, 0x0E4E},
	{0x20D0, 0x20FF}, // Combining Diacritical Marks for Symbols
	{0xFE00, 0xFE0F}, // Variation Selectors
	{0xFE20, 0xFE2F}, // Combining Half Marks
}

func isZeroWidthCombining(r rune) bool {
	for _, rg := range zeroWidthRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// StringWidth sums the display width of every rune in s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += Width(r)
	}
	return w
}

// NextBoundary returns the byte offset of the start of the character
// following the one at byte offset i in buf. If i is already at or past the
// end, it returns len(buf).
func NextBoundary(buf []byte, i int) int {
	if i >= len(buf) {
		return len(buf)
	}
	_, size := utf8.DecodeRune(buf[i:])
	if size <= 0 {
		size = 1
	}
	n := i + size
	if n > len(buf) {
		n = len(buf)
	}
	return n
}

// PrevBoundary returns the byte offset of the start of the character
// preceding the one starting at byte offset i in buf. If i is already at or
// before the start, it returns 0.
func PrevBoundary(buf []byte, i int) int {
	if i <= 0 {
		return 0
	}
	j := i - 1
	for j > 0 && isUTF8Continuation(buf[j]) {
		j--
	}
	return j
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}

// RuneAt decodes the rune starting at byte offset i in buf, along with its
// encoded length. Returns (utf8.RuneError, 1) if buf[i:] is not valid UTF-8,
// and (utf8.RuneError, 0) if i is out of range.
func RuneAt(buf []byte, i int) (rune, int) {
	if i < 0 || i >= len(buf) {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(buf[i:])
	if size <= 0 {
		size = 1
	}
	return r, size
}
