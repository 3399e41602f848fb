package json

// SkipNumber expects the cursor on the first byte of a number and leaves it
// on the byte after it.
//
// Permissive mode skips any run of number characters and leaves grammar
// checks to the numeric conversion. Strict mode enforces the JSON number
// grammar and records SyntaxError at the first violation.
func SkipNumber(ctx *Context, cur *Cursor, opts Options) {
	if ctx.Failed() {
		return
	}
	if opts.Strict {
		skipNumberWithValidation(ctx, cur)
		return
	}
	if cur.pos >= cur.end {
		ctx.Fail(UnexpectedEnd, cur.end)
		return
	}
	i := cur.pos + 1
	for i < cur.end && isNumeric[cur.buf[i]] {
		i++
	}
	cur.pos = i
}

func skipDigits(b []byte, i, end int) int {
	for i < end && isDigit(b[i]) {
		i++
	}
	return i
}

func skipNumberWithValidation(ctx *Context, cur *Cursor) {
	b, end := cur.buf, cur.end
	i := cur.pos
	fail := func(at int) {
		cur.pos = at
		ctx.Fail(SyntaxError, at)
	}

	if i < end && b[i] == '-' {
		i++
	}
	switch {
	case i >= end:
		fail(i)
		return
	case b[i] == '0':
		i++
		if i < end && isDigit(b[i]) {
			fail(i)
			return
		}
	default:
		start := i
		i = skipDigits(b, i, end)
		if i == start {
			fail(i)
			return
		}
	}

	if i < end && b[i] == '.' {
		i++
		start := i
		i = skipDigits(b, i, end)
		if i == start {
			fail(i)
			return
		}
	}

	if i < end && b[i]|('E'^'e') == 'e' {
		i++
		if i < end && (b[i] == '+' || b[i] == '-') {
			i++
		}
		start := i
		i = skipDigits(b, i, end)
		if i == start {
			fail(i)
			return
		}
	}
	cur.pos = i
}
