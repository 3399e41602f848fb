package json

// Padding is the number of readable bytes past the logical end that lets
// length-hinted key scans load a full word without falling back.
const Padding = 32

// Pad returns data with at least Padding bytes of spare capacity. The
// returned slice has the same length as data; it is a copy only when data
// lacked the capacity.
func Pad(data []byte) []byte {
	if cap(data)-len(data) >= Padding {
		return data
	}
	padded := make([]byte, len(data), len(data)+Padding)
	copy(padded, data)
	return padded
}

// Cursor is a forward-only read position over a caller-owned buffer.
// The buffer is borrowed: the cursor never writes to or retains it beyond
// the operation that created it.
type Cursor struct {
	buf []byte // up to cap of the caller's slice; bytes past end are don't-care
	pos int
	end int
}

// NewCursor returns a cursor at the start of data. The logical end is
// len(data); spare capacity is only ever read by word loads whose results
// are checked against the end.
func NewCursor(data []byte) *Cursor {
	return &Cursor{buf: data[:cap(data)], end: len(data)}
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) End() int {
	return c.end
}

func (c *Cursor) AtEnd() bool {
	return c.pos >= c.end
}

// Remaining returns the unread part of the buffer.
func (c *Cursor) Remaining() []byte {
	return c.buf[c.pos:c.end]
}

// Since returns the bytes between start and the current position.
func (c *Cursor) Since(start int) []byte {
	return c.buf[start:c.pos]
}

// Peek returns the byte under the cursor, or 0 at the end of input.
func (c *Cursor) Peek() byte {
	if c.pos < c.end {
		return c.buf[c.pos]
	}
	return 0
}

// Advance moves the cursor n bytes forward, stopping at the end.
func (c *Cursor) Advance(n int) {
	c.pos += n
	if c.pos > c.end {
		c.pos = c.end
	}
}

// unexpected records UnexpectedEnd when the cursor has run out of input and
// SyntaxError otherwise.
func unexpected(ctx *Context, cur *Cursor) {
	if cur.pos >= cur.end {
		ctx.Fail(UnexpectedEnd, cur.end)
		return
	}
	ctx.Fail(SyntaxError, cur.pos)
}

// Match consumes c or records an error.
func Match(ctx *Context, cur *Cursor, c byte) {
	if ctx.Failed() {
		return
	}
	if cur.pos >= cur.end || cur.buf[cur.pos] != c {
		unexpected(ctx, cur)
		return
	}
	cur.pos++
}

// MatchLiteral consumes lit or records an error. A truncated prefix of lit
// at the end of input is reported as UnexpectedEnd.
func MatchLiteral(ctx *Context, cur *Cursor, lit string) {
	if ctx.Failed() {
		return
	}
	rest := cur.buf[cur.pos:cur.end]
	if len(rest) < len(lit) {
		if string(rest) == lit[:len(rest)] {
			ctx.Fail(UnexpectedEnd, cur.end)
			return
		}
		ctx.Fail(SyntaxError, cur.pos)
		return
	}
	if string(rest[:len(lit)]) != lit {
		ctx.Fail(SyntaxError, cur.pos)
		return
	}
	cur.pos += len(lit)
}
