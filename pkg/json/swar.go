package json

import (
	"encoding/binary"
	"math/bits"
)

// Word-parallel byte tests. Each test returns a mask with the high bit set in
// every byte lane that matches; lanes above the first match may carry false
// positives from the borrow, so only the lowest set lane is meaningful.

const (
	lsb = 0x0101010101010101
	msb = 0x8080808080808080
)

func repeatByte(c byte) uint64 {
	return lsb * uint64(c)
}

var (
	quoteWord  = repeatByte('"')
	escapeWord = repeatByte('\\')
	slashWord  = repeatByte('/')
)

func hasZero(w uint64) uint64 {
	return (w - lsb) &^ w & msb
}

func hasByte(w uint64, c byte) uint64 {
	return hasZero(w ^ repeatByte(c))
}

func hasQuote(w uint64) uint64 {
	return hasZero(w ^ quoteWord)
}

func hasEscape(w uint64) uint64 {
	return hasZero(w ^ escapeWord)
}

func hasForwardSlash(w uint64) uint64 {
	return hasZero(w ^ slashWord)
}

// hasLess flags lanes holding a byte below n. n must not exceed 128.
func hasLess(w uint64, n byte) uint64 {
	return (w - repeatByte(n)) &^ w & msb
}

// firstMatch returns the lane of the lowest flagged byte, or 8 for an empty mask.
func firstMatch(mask uint64) int {
	return bits.TrailingZeros64(mask) >> 3
}

// load64 reads 8 bytes as a little-endian word so lane 0 is b[0].
func load64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// lowBytes keeps the n lowest lanes of a word and zeroes the rest.
func lowBytes(w uint64, n int) uint64 {
	if n >= 8 {
		return w
	}
	return w & (1<<(uint(n)*8) - 1)
}
