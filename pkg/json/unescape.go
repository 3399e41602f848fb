package json

// decodeHex4 decodes four hex digits.
func decodeHex4(b []byte) (uint32, bool) {
	h0, h1, h2, h3 := hexTable[b[0]], hexTable[b[1]], hexTable[b[2]], hexTable[b[3]]
	if (h0|h1|h2|h3)&0xF0 != 0 {
		return 0, false
	}
	return uint32(h0)<<12 | uint32(h1)<<8 | uint32(h2)<<4 | uint32(h3), true
}

// handleUnicode decodes the \uXXXX escape at src[i] and appends it to dst.
// A high surrogate consumes a following \u low surrogate when one is
// present. Unpaired surrogates decode to U+FFFD. It returns the index after
// the consumed escapes.
func handleUnicode(dst, src []byte, i int) ([]byte, int, bool) {
	if len(src)-i < 6 {
		return dst, i, false
	}
	cp, ok := decodeHex4(src[i+2 : i+6])
	if !ok {
		return dst, i, false
	}
	i += 6

	switch {
	case cp-0xD800 < 0x400:
		hi := cp
		cp = replacementChar
		if len(src)-i >= 6 && src[i] == '\\' && src[i+1] == 'u' {
			if lo, ok := decodeHex4(src[i+2 : i+6]); ok && lo-0xDC00 < 0x400 {
				cp = ((hi-0xD800)<<10 | (lo - 0xDC00)) + 0x10000
				i += 6
			}
		}
	case cp-0xDC00 < 0x400:
		cp = replacementChar
	}
	return appendCodePoint(dst, cp), i, true
}

// unescapeAt resolves the escape at src[i], which must be a backslash.
func unescapeAt(dst, src []byte, i int) ([]byte, int, ErrorCode) {
	if i+1 >= len(src) {
		return dst, i, ExpectedQuote
	}
	c := src[i+1]
	if c == 'u' {
		out, next, ok := handleUnicode(dst, src, i)
		if !ok {
			return dst, i, SyntaxError
		}
		return out, next, None
	}
	if r := escapeTable[c]; r != 0 {
		return append(dst, r), i + 2, None
	}
	return dst, i, SyntaxError
}

// DecodeString appends the decoded content of a string body to dst. src
// starts just inside the opening quote. On success it returns the index of
// the closing quote in src. On failure the index is where decoding stopped
// and the code says why: SyntaxError for an invalid escape, ExpectedQuote
// when src ends before the closing quote.
func DecodeString(dst, src []byte) ([]byte, int, ErrorCode) {
	i := 0
	for i+8 <= len(src) {
		w := load64(src[i:])
		m := hasQuote(w) | hasEscape(w)
		if m == 0 {
			dst = append(dst, src[i:i+8]...)
			i += 8
			continue
		}
		k := firstMatch(m)
		dst = append(dst, src[i:i+k]...)
		i += k
		if src[i] == '"' {
			return dst, i, None
		}
		var code ErrorCode
		if dst, i, code = unescapeAt(dst, src, i); code != None {
			return dst, i, code
		}
	}
	return decodeStringBytewise(dst, src, i)
}

func decodeStringBytewise(dst, src []byte, i int) ([]byte, int, ErrorCode) {
	for i < len(src) {
		switch c := src[i]; c {
		case '"':
			return dst, i, None
		case '\\':
			var code ErrorCode
			if dst, i, code = unescapeAt(dst, src, i); code != None {
				return dst, i, code
			}
		default:
			dst = append(dst, c)
			i++
		}
	}
	return dst, i, ExpectedQuote
}

// ParseString expects the cursor on an opening quote, appends the decoded
// string to dst and leaves the cursor after the closing quote.
func ParseString(ctx *Context, cur *Cursor, dst []byte) []byte {
	Match(ctx, cur, '"')
	if ctx.Failed() {
		return dst
	}
	start := cur.pos
	out, n, code := DecodeString(dst, cur.buf[start:cur.end])
	if code != None {
		cur.pos = start + n
		ctx.Fail(code, cur.pos)
		return out
	}
	cur.pos = start + n + 1
	return out
}
