// Package ndjson reads and writes newline-delimited JSON record sequences.
//
// Records are separated by one or more line terminators, "\n" or "\r\n".
// Writers emit exactly one "\n" between records and none after the last.
package ndjson

import (
	"fmt"
	"slices"

	"github.com/BLAZED-sh/ndscan/pkg/json"
	"github.com/BLAZED-sh/ndscan/pkg/source"
)

// Read decodes the records in buf into dst.
//
// Existing elements of dst are decoded in place. When buf runs out first,
// a Truncater drops the unfilled tail. When records remain after the last
// existing element, an Appender grows; any other destination fails with
// json.ErrExceededStaticArraySize.
func Read(dst Sequence, buf []byte, opts ...Option) error {
	o := newOptions(opts)
	ctx := json.Context{File: o.file}
	readRecords(&ctx, json.NewCursor(buf), dst, o)
	return ctx.Err()
}

func readRecords(ctx *json.Context, cur *json.Cursor, dst Sequence, o *options) {
	for i := 0; ; i++ {
		if i > 0 {
			readNewLines(ctx, cur)
		}
		// Comments may sit on lines of their own.
		json.SkipWhitespace(ctx, cur, o.json)
		if ctx.Failed() {
			return
		}
		if cur.AtEnd() {
			if i < dst.Len() {
				truncate(dst, i, o)
			}
			return
		}

		var v any
		if i < dst.Len() {
			v = dst.Index(i)
		} else if app, ok := dst.(Appender); ok {
			v = app.Append()
		} else {
			ctx.Fail(json.ExceededStaticArraySize, cur.Pos())
			return
		}

		o.codec.DecodeValue(ctx, cur, v, o.json)
		if ctx.Failed() {
			return
		}
	}
}

func truncate(dst Sequence, n int, o *options) {
	t, ok := dst.(Truncater)
	if !ok {
		return
	}
	t.Truncate(n)
	if s, ok := dst.(Shrinker); ok && o.shrink {
		s.ShrinkToFit()
	}
}

// readNewLines consumes the separator after a record: optional blanks, at
// least one line terminator, then any further whitespace. Trailing blanks
// at the end of input are accepted. A '\r' must be followed by '\n'.
func readNewLines(ctx *json.Context, cur *json.Cursor) {
	rest := cur.Remaining()
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if i == len(rest) {
		cur.Advance(i)
		return
	}
	if rest[i] != '\n' && rest[i] != '\r' {
		ctx.Fail(json.SyntaxError, cur.Pos()+i)
		return
	}
	for i < len(rest) {
		switch rest[i] {
		case '\r':
			if i+1 >= len(rest) || rest[i+1] != '\n' {
				ctx.Fail(json.SyntaxError, cur.Pos()+i+1)
				return
			}
			i += 2
		case '\n', ' ', '\t':
			i++
		default:
			cur.Advance(i)
			return
		}
	}
	cur.Advance(i)
}

// Write encodes the records of src into sink, separated by single
// newlines.
func Write(src Sequence, sink *json.Sink, opts ...Option) error {
	o := newOptions(opts)
	ctx := json.Context{File: o.file}
	for i := 0; i < src.Len() && !ctx.Failed(); i++ {
		if i > 0 {
			_ = sink.WriteByte('\n')
		}
		o.codec.EncodeValue(&ctx, src.Index(i), sink, o.json)
	}
	return ctx.Err()
}

// Unmarshal decodes every record in data.
func Unmarshal[T any](data []byte, opts ...Option) ([]T, error) {
	var records []T
	if err := Read(Grow(&records), data, opts...); err != nil {
		return records, err
	}
	return records, nil
}

func Marshal[T any](records []T, opts ...Option) ([]byte, error) {
	sink := json.NewSink(64 * len(records))
	if err := Write(Fixed(records), sink, opts...); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// ReadFile reads the records of the named file into dst. The file is
// transcoded to UTF-8 first when WithCharset is given.
func ReadFile(dst Sequence, name string, opts ...Option) error {
	o := newOptions(opts)
	buf, err := source.ReadFile(name, o.charset)
	if err != nil {
		return fmt.Errorf("reading records: %w", err)
	}
	return Read(dst, buf, append(slices.Clip(opts), WithFile(name))...)
}

func WriteFile(src Sequence, name string, opts ...Option) error {
	sink := json.NewSink(4096)
	if err := Write(src, sink, append(slices.Clip(opts), WithFile(name))...); err != nil {
		return err
	}
	return source.WriteFile(name, sink.Bytes())
}
