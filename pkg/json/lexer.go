package json

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ErrRecordTooLarge is returned when a record grows past the configured
// maximum before it is complete.
var ErrRecordTooLarge = errors.New("record exceeds maximum size")

// StreamLexer splits a stream of concatenated or newline-delimited JSON
// values read from an io.Reader into individual records. It does not decode
// anything; each record is scanned with the skippers of this package and
// handed to a callback as a slice of the internal buffer.
type StreamLexer struct {
	reader  io.Reader
	context context.Context
	maxRead int
	log     zerolog.Logger
	opts    Options

	buffer   []byte
	cursor   int // Points to beginning of next record
	length   int // Number of bytes used in buffer
	consumed int // Bytes compacted away, for absolute error offsets
	eof      bool

	// delimited requires a line separator between records; separate is set
	// while the separator after the last record is still unread.
	delimited bool
	separate  bool

	maxRecordSize int
}

// Create a new StreamLexer with the given reader and buffer size.
func NewStreamLexer(
	context context.Context,
	reader io.Reader,
	bufferSize int,
	maxRead int,
) *StreamLexer {
	return &StreamLexer{
		reader:  reader,
		context: context,
		buffer:  make([]byte, bufferSize),
		maxRead: maxRead,
		log:     zerolog.Nop(),
	}
}

func (l *StreamLexer) SetOptions(opts Options) {
	l.opts = opts
}

func (l *StreamLexer) SetLogger(logger zerolog.Logger) {
	l.log = logger
}

// SetMaxRecordSize bounds how far a single incomplete record may grow.
// Zero means unbounded.
func (l *StreamLexer) SetMaxRecordSize(n int) {
	l.maxRecordSize = n
}

// SetDelimited makes the lexer frame records the way newline-delimited
// input is read: consecutive records must be separated by at least one
// line terminator, and a '\r' must be followed by '\n'.
func (l *StreamLexer) SetDelimited(delimited bool) {
	l.delimited = delimited
}

func (l *StreamLexer) BufferLength() int {
	return l.length
}

func (l *StreamLexer) Read() (int, error) {
	// Ensure we have room for at least maxRead more data
	bCap := cap(l.buffer)
	if bCap-l.length < l.maxRead {
		minCap := l.length + l.maxRead
		newCap := bCap * 2
		if newCap < minCap {
			newCap = minCap
		}
		newBuffer := make([]byte, newCap)
		copy(newBuffer, l.buffer[:l.length])
		l.buffer = newBuffer
		l.log.Debug().Int("from", bCap).Int("to", newCap).Msg("Grew lexer buffer")
	}

	n, err := l.reader.Read(l.buffer[l.length : l.length+l.maxRead])
	l.length += n
	if err == io.EOF {
		l.eof = true
	}
	return n, err
}

// DecodeAll reads until EOF, calling cb with every complete record. Read
// and scan failures go to errCb and stop decoding, as do an error returned
// by cb and cancellation of the lexer's context.
func (l *StreamLexer) DecodeAll(cb func([]byte) error, errCb func(error)) {
	for {
		select {
		case <-l.context.Done():
			errCb(l.context.Err())
			return
		default:
			n, err := l.Read()

			if err == io.EOF {
				l.processBuffer(cb, errCb)
				return
			}

			// Exit on real errors
			if err != nil && err != io.ErrUnexpectedEOF {
				errCb(err)
				return
			}

			if n == 0 {
				continue // Try reading again if we need more data
			}

			if done := l.processBuffer(cb, errCb); done {
				return
			}
		}
	}
}

// NextRecord locates the next record in the buffer. It returns end == -1
// when the buffer holds only part of a record, a separator or a comment and
// more input may follow; start is then the position to resume from.
func (l *StreamLexer) NextRecord() (start, end int, err error) {
	var ctx Context
	cur := &Cursor{buf: l.buffer[:cap(l.buffer)], pos: l.cursor, end: l.length}

	if l.delimited && l.separate {
		if !l.skipSeparator(&ctx, cur) {
			return l.cursor, -1, nil
		}
		if ctx.Failed() {
			ctx.offset += l.consumed
			return l.cursor, 0, ctx.Err()
		}
		l.separate = false
	}

	// Whitespace and comments running into the end of the buffer are kept
	// so a split comment is scanned again once the rest arrives.
	resume := cur.pos
	SkipWhitespace(&ctx, cur, l.opts)
	if !l.eof && cur.pos >= l.length {
		return resume, -1, nil
	}
	start = cur.pos
	if !ctx.Failed() {
		if cur.AtEnd() {
			return start, -1, nil
		}
		SkipValue(&ctx, cur, l.opts)
	}

	if !l.eof && l.incomplete(&ctx, cur, start) {
		if l.maxRecordSize > 0 && l.length-start > l.maxRecordSize {
			return start, 0, fmt.Errorf("%w: %d bytes", ErrRecordTooLarge, l.maxRecordSize)
		}
		return start, -1, nil
	}
	if ctx.Failed() {
		ctx.offset += l.consumed
		return start, 0, ctx.Err()
	}
	return start, cur.pos, nil
}

// skipSeparator consumes the line separator after a record: optional
// blanks, at least one terminator, then any further whitespace. Blanks at
// the end of input are accepted. It reports false when the buffer ends
// before the separator does and more input may follow.
func (l *StreamLexer) skipSeparator(ctx *Context, cur *Cursor) bool {
	b, i := cur.buf, cur.pos
	for i < cur.end && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	if i == cur.end {
		cur.pos = i
		return l.eof
	}
	if b[i] != '\n' && b[i] != '\r' {
		ctx.Fail(SyntaxError, i)
		return true
	}
	for i < cur.end {
		switch b[i] {
		case '\r':
			if i+1 >= cur.end && !l.eof {
				return false
			}
			if i+1 >= cur.end || b[i+1] != '\n' {
				ctx.Fail(SyntaxError, i+1)
				return true
			}
			i += 2
		case '\n', ' ', '\t':
			i++
		default:
			cur.pos = i
			return true
		}
	}
	cur.pos = i
	return l.eof
}

// incomplete reports whether a scan stopped because the buffer ran out
// rather than because the record is malformed.
func (l *StreamLexer) incomplete(ctx *Context, cur *Cursor, start int) bool {
	if ctx.Failed() {
		return ctx.Code() == UnexpectedEnd || ctx.Offset() >= l.length
	}
	// A scalar running into the end of the buffer may continue.
	if cur.pos < l.length {
		return false
	}
	c := l.buffer[start]
	return c != '{' && c != '['
}

// processBuffer processes complete records in the buffer and calls the
// callback for each. It reports whether decoding should stop.
func (l *StreamLexer) processBuffer(cb func([]byte) error, errCb func(error)) (done bool) {
	for l.cursor < l.length {
		start, end, err := l.NextRecord()
		if err != nil {
			errCb(err)
			return true // Exit on parsing errors
		}
		if end == -1 {
			l.compact(start)
			return l.eof // Need more data
		}

		if err := cb(l.buffer[start:end]); err != nil {
			errCb(err)
			return true
		}
		l.cursor = end
		l.separate = true
	}
	l.compact(l.cursor)
	return l.eof
}

// compact drops everything before from.
func (l *StreamLexer) compact(from int) {
	if from == 0 {
		return
	}
	copy(l.buffer, l.buffer[from:l.length])
	l.length -= from
	l.consumed += from
	l.cursor = 0
}
