package json

import "bytes"

// SkipTillQuote moves the cursor onto the next '"', ignoring escapes. It is
// meant for spans already known to be escape free.
func SkipTillQuote(ctx *Context, cur *Cursor) {
	if ctx.Failed() {
		return
	}
	i := bytes.IndexByte(cur.buf[cur.pos:cur.end], '"')
	if i < 0 {
		cur.pos = cur.end
		ctx.Fail(ExpectedQuote, cur.end)
		return
	}
	cur.pos += i
}

// SkipTillEscapeOrQuote moves the cursor onto the next '"' or '\'.
func SkipTillEscapeOrQuote(ctx *Context, cur *Cursor) {
	if ctx.Failed() {
		return
	}
	i := indexEscapeOrQuote(cur.buf, cur.pos, cur.end)
	if i < 0 {
		cur.pos = cur.end
		ctx.Fail(ExpectedQuote, cur.end)
		return
	}
	cur.pos = i
}

// SkipTillUnescapedQuote moves the cursor, which must be inside a string,
// onto the quote that closes it.
func SkipTillUnescapedQuote(ctx *Context, cur *Cursor) {
	if ctx.Failed() {
		return
	}
	i := indexUnescapedQuote(cur.buf, cur.pos, cur.end)
	if i < 0 {
		cur.pos = cur.end
		ctx.Fail(ExpectedQuote, cur.end)
		return
	}
	cur.pos = i
}

func indexEscapeOrQuote(b []byte, i, end int) int {
	for ; i+8 <= end; i += 8 {
		w := load64(b[i:])
		if m := hasQuote(w) | hasEscape(w); m != 0 {
			return i + firstMatch(m)
		}
	}
	for ; i < end; i++ {
		if c := b[i]; c == '"' || c == '\\' {
			return i
		}
	}
	return -1
}

// indexUnescapedQuote returns the position of the first quote at or after i
// that is not the argument of a backslash escape, or -1.
func indexUnescapedQuote(b []byte, i, end int) int {
	if WideWindows {
		for i+32 <= end {
			j := i
			for ; j < i+32; j += 8 {
				w := load64(b[j:])
				if m := hasQuote(w) | hasEscape(w); m != 0 {
					j += firstMatch(m)
					break
				}
			}
			if j == i+32 {
				i = j
				continue
			}
			if b[j] == '"' {
				return j
			}
			i = j + 2
		}
	}
	for i+8 <= end {
		w := load64(b[i:])
		m := hasQuote(w) | hasEscape(w)
		if m == 0 {
			i += 8
			continue
		}
		i += firstMatch(m)
		if b[i] == '"' {
			return i
		}
		i += 2
	}
	for i < end {
		switch b[i] {
		case '"':
			return i
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return -1
}

// SkipString expects the cursor on an opening quote and leaves it on the
// byte after the closing quote.
//
// In permissive mode a backslash escapes exactly the next byte and an
// unterminated string simply runs to the end of input. Strict mode rejects
// raw control characters and malformed escapes, and reports an unterminated
// string as UnexpectedEnd.
func SkipString(ctx *Context, cur *Cursor, opts Options) {
	if ctx.Failed() {
		return
	}
	if !opts.Strict {
		i := indexUnescapedQuote(cur.buf, cur.pos+1, cur.end)
		if i < 0 {
			cur.pos = cur.end
			return
		}
		cur.pos = i + 1
		return
	}
	skipStringStrict(ctx, cur)
}

func skipStringStrict(ctx *Context, cur *Cursor) {
	b, end := cur.buf, cur.end
	i := cur.pos + 1
	for {
		if i >= end {
			cur.pos = end
			ctx.Fail(UnexpectedEnd, end)
			return
		}
		c := b[i]
		switch {
		case c == '"':
			cur.pos = i + 1
			return
		case c < 0x20:
			cur.pos = i
			ctx.Fail(SyntaxError, i)
			return
		case c != '\\':
			i++
			continue
		}

		i++
		if i >= end {
			cur.pos = end
			ctx.Fail(UnexpectedEnd, end)
			return
		}
		switch b[i] {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			i++
		case 'u':
			i++
			if end-i < 4 || !isHex4(b[i:i+4]) {
				cur.pos = i
				ctx.Fail(SyntaxError, i)
				return
			}
			i += 4
		default:
			cur.pos = i
			ctx.Fail(SyntaxError, i)
			return
		}
	}
}

func isHex4(b []byte) bool {
	return (hexTable[b[0]]|hexTable[b[1]]|hexTable[b[2]]|hexTable[b[3]])&0xF0 == 0
}
