package json

// SkipUntilClosed expects the cursor on open and leaves it on the byte after
// the matching close. Strings and comments are skipped whole so brackets
// inside them do not count. A NUL byte or the end of input before the
// brackets balance is UnexpectedEnd.
func SkipUntilClosed(ctx *Context, cur *Cursor, open, close byte) {
	if ctx.Failed() {
		return
	}
	cur.pos++
	depth := 1
	for {
		// Jump over runs of bytes that cannot change the balance.
		for cur.pos+8 <= cur.end {
			w := load64(cur.buf[cur.pos:])
			m := hasQuote(w) | hasForwardSlash(w) | hasByte(w, open) | hasByte(w, close) | hasZero(w)
			if m != 0 {
				cur.pos += firstMatch(m)
				break
			}
			cur.pos += 8
		}
		if cur.pos >= cur.end {
			ctx.Fail(UnexpectedEnd, cur.end)
			return
		}

		switch c := cur.buf[cur.pos]; c {
		case 0:
			ctx.Fail(UnexpectedEnd, cur.pos)
			return
		case '/':
			skipComment(ctx, cur)
			if ctx.Failed() {
				return
			}
		case '"':
			SkipString(ctx, cur, Options{})
		case open:
			depth++
			cur.pos++
		case close:
			depth--
			cur.pos++
			if depth == 0 {
				return
			}
		default:
			cur.pos++
		}
	}
}

// SkipValue skips leading whitespace and one complete value, leaving the
// cursor on the byte after it. Containers are balanced-skipped in permissive
// mode and fully validated in strict mode.
func SkipValue(ctx *Context, cur *Cursor, opts Options) {
	SkipWhitespace(ctx, cur, opts)
	if ctx.Failed() {
		return
	}
	switch c := cur.Peek(); c {
	case '{':
		if opts.Strict {
			skipObject(ctx, cur, opts)
			return
		}
		SkipUntilClosed(ctx, cur, '{', '}')
	case '[':
		if opts.Strict {
			skipArray(ctx, cur, opts)
			return
		}
		SkipUntilClosed(ctx, cur, '[', ']')
	case '"':
		SkipString(ctx, cur, opts)
	case 't':
		MatchLiteral(ctx, cur, "true")
	case 'f':
		MatchLiteral(ctx, cur, "false")
	case 'n':
		MatchLiteral(ctx, cur, "null")
	default:
		if c == '-' || isDigit(c) {
			SkipNumber(ctx, cur, opts)
			return
		}
		unexpected(ctx, cur)
	}
}

func skipObject(ctx *Context, cur *Cursor, opts Options) {
	cur.pos++
	SkipWhitespace(ctx, cur, opts)
	if ctx.Failed() {
		return
	}
	if cur.Peek() == '}' {
		cur.pos++
		return
	}
	for {
		if cur.Peek() != '"' {
			unexpected(ctx, cur)
			return
		}
		SkipString(ctx, cur, opts)
		SkipWhitespace(ctx, cur, opts)
		Match(ctx, cur, ':')
		SkipValue(ctx, cur, opts)
		SkipWhitespace(ctx, cur, opts)
		if ctx.Failed() {
			return
		}
		switch cur.Peek() {
		case ',':
			cur.pos++
			SkipWhitespace(ctx, cur, opts)
			if ctx.Failed() {
				return
			}
		case '}':
			cur.pos++
			return
		default:
			unexpected(ctx, cur)
			return
		}
	}
}

func skipArray(ctx *Context, cur *Cursor, opts Options) {
	cur.pos++
	SkipWhitespace(ctx, cur, opts)
	if ctx.Failed() {
		return
	}
	if cur.Peek() == ']' {
		cur.pos++
		return
	}
	for {
		SkipValue(ctx, cur, opts)
		SkipWhitespace(ctx, cur, opts)
		if ctx.Failed() {
			return
		}
		switch cur.Peek() {
		case ',':
			cur.pos++
		case ']':
			cur.pos++
			return
		default:
			unexpected(ctx, cur)
			return
		}
	}
}

// Valid reports whether data holds exactly one value, surrounded only by
// whitespace (and comments in permissive mode).
func Valid(data []byte, opts Options) bool {
	var ctx Context
	cur := NewCursor(data)
	SkipValue(&ctx, cur, opts)
	SkipWhitespace(&ctx, cur, opts)
	return !ctx.Failed() && cur.AtEnd()
}
