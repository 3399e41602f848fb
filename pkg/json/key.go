package json

import "bytes"

// ParseUnescapedKey expects the cursor just past an opening quote and
// returns the bytes up to the next quote, leaving the cursor after it. Keys
// are assumed escape free; a backslash is returned verbatim.
//
// The returned slice aliases the input buffer.
func ParseUnescapedKey(ctx *Context, cur *Cursor) []byte {
	if ctx.Failed() {
		return nil
	}
	start := cur.pos
	i := start
	for ; i+8 <= cur.end; i += 8 {
		if m := hasQuote(load64(cur.buf[i:])); m != 0 {
			return takeKey(cur, start, i+firstMatch(m))
		}
	}
	if j := bytes.IndexByte(cur.buf[i:cur.end], '"'); j >= 0 {
		return takeKey(cur, start, i+j)
	}
	cur.pos = cur.end
	ctx.Fail(ExpectedQuote, cur.end)
	return nil
}

func takeKey(cur *Cursor, start, quote int) []byte {
	cur.pos = quote + 1
	return cur.buf[start:quote:quote]
}

// ParseKey consumes a quoted, escape-free key with the cursor on its
// opening quote.
func ParseKey(ctx *Context, cur *Cursor) []byte {
	Match(ctx, cur, '"')
	return ParseUnescapedKey(ctx, cur)
}

// ParseKeyHint is ParseUnescapedKey for keys known to be between minLen and
// minLen+lengthRange bytes long. When the bounds hold, the closing quote is
// found with a single word load past the first minLen bytes. Keys outside
// the bounds, and ranges of 8 or more, take the generic path, so the result
// is always the same as ParseUnescapedKey.
func ParseKeyHint(ctx *Context, cur *Cursor, minLen, lengthRange int) []byte {
	if ctx.Failed() {
		return nil
	}
	start := cur.pos
	probe := start + minLen
	if minLen < 0 || lengthRange < 0 || lengthRange >= 8 ||
		probe > cur.end || probe+8 > len(cur.buf) {
		return ParseUnescapedKey(ctx, cur)
	}
	if bytes.IndexByte(cur.buf[start:probe], '"') >= 0 {
		return ParseUnescapedKey(ctx, cur)
	}
	w := lowBytes(load64(cur.buf[probe:]), lengthRange+1)
	if m := hasQuote(w); m != 0 {
		if q := probe + firstMatch(m); q < cur.end {
			return takeKey(cur, start, q)
		}
	}
	return ParseUnescapedKey(ctx, cur)
}
