package json

import "bytes"

// Options selects the grammar enforcement level.
type Options struct {
	// Strict rejects comments and validates strings and numbers against
	// the JSON grammar. The default is permissive.
	Strict bool
}

var endBlockComment = []byte("*/")

// SkipWhitespace advances over ASCII whitespace and, unless opts.Strict is
// set, over line and block comments.
func SkipWhitespace(ctx *Context, cur *Cursor, opts Options) {
	if ctx.Failed() {
		return
	}
	for cur.pos < cur.end {
		c := cur.buf[cur.pos]
		if isWhitespace[c] {
			cur.pos++
			continue
		}
		if c != '/' {
			return
		}
		if opts.Strict {
			ctx.Fail(SyntaxError, cur.pos)
			return
		}
		skipComment(ctx, cur)
		if ctx.Failed() {
			return
		}
	}
}

// skipComment expects the cursor on '/'. A line comment leaves the cursor on
// its terminating newline.
func skipComment(ctx *Context, cur *Cursor) {
	if ctx.Failed() {
		return
	}
	cur.pos++
	if cur.pos >= cur.end {
		ctx.Fail(UnexpectedEnd, cur.end)
		return
	}
	switch cur.buf[cur.pos] {
	case '/':
		cur.pos++
		if i := bytes.IndexByte(cur.buf[cur.pos:cur.end], '\n'); i >= 0 {
			cur.pos += i
		} else {
			cur.pos = cur.end
		}
	case '*':
		cur.pos++
		i := bytes.Index(cur.buf[cur.pos:cur.end], endBlockComment)
		if i < 0 {
			cur.pos = cur.end
			ctx.Fail(ExpectedEndComment, cur.end)
			return
		}
		cur.pos += i + len(endBlockComment)
	default:
		ctx.Fail(ExpectedEndComment, cur.pos)
	}
}
