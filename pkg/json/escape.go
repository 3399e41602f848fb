package json

const hexDigits = "0123456789abcdef"

// shortEscape maps bytes that need escaping to the letter of their two-byte
// escape. Zero means the byte is written as \u00XX.
var shortEscape = [256]byte{
	'"':  '"',
	'\\': '\\',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

func loadString64(s string, i int) uint64 {
	_ = s[i+7]
	return uint64(s[i]) | uint64(s[i+1])<<8 | uint64(s[i+2])<<16 | uint64(s[i+3])<<24 |
		uint64(s[i+4])<<32 | uint64(s[i+5])<<40 | uint64(s[i+6])<<48 | uint64(s[i+7])<<56
}

func needsEscape(c byte) bool {
	return c < 0x20 || c == '"' || c == '\\'
}

// AppendString appends s to dst as a quoted string. Quotes, backslashes and
// control characters are escaped; all other bytes are copied unchanged.
func AppendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	i := 0
	for i < len(s) {
		if i+8 <= len(s) {
			w := loadString64(s, i)
			m := hasQuote(w) | hasEscape(w) | hasLess(w, 0x20)
			if m == 0 {
				i += 8
				continue
			}
			i += firstMatch(m)
		}
		c := s[i]
		if !needsEscape(c) {
			i++
			continue
		}
		dst = append(dst, s[start:i]...)
		if e := shortEscape[c]; e != 0 {
			dst = append(dst, '\\', e)
		} else {
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		i++
		start = i
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
