package json

import "math/bits"

const replacementChar = 0xFFFD

// pdep scatters the low bits of src into the set bit positions of mask,
// lowest first.
func pdep(src, mask uint32) uint32 {
	var out uint32
	for m := mask; m != 0; m &= m - 1 {
		if src&1 != 0 {
			out |= m & -m
		}
		src >>= 1
	}
	return out
}

// appendCodePoint appends the UTF-8 encoding of cp, which must be a valid
// scalar value. The payload bits are deposited around the fixed prefix bits
// of the chosen length in one step.
func appendCodePoint(dst []byte, cp uint32) []byte {
	switch lz := bits.LeadingZeros32(cp); {
	case lz >= 25:
		return append(dst, byte(cp))
	case lz >= 21:
		v := pdep(cp, 0x1F3F) | 0xC080
		return append(dst, byte(v>>8), byte(v))
	case lz >= 16:
		v := pdep(cp, 0x0F3F3F) | 0xE08080
		return append(dst, byte(v>>16), byte(v>>8), byte(v))
	default:
		v := pdep(cp, 0x073F3F3F) | 0xF0808080
		return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}
