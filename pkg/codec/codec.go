// Package codec binds scanned JSON values to Go values.
//
// Strings and raw values are handled by the scanner directly. Everything
// else is located with json.SkipValue and handed to goccy/go-json; untyped
// destinations keep numbers as json.Number.
package codec

import (
	"bytes"

	"github.com/BLAZED-sh/ndscan/pkg/json"
	gojson "github.com/goccy/go-json"
)

type Codec struct{}

// Default is the codec used when callers do not supply one.
var Default Codec

var null = []byte("null")

// DecodeValue decodes the value under the cursor into v, which must be a
// pointer. Leading whitespace is skipped; the cursor ends on the byte after
// the value.
func (Codec) DecodeValue(ctx *json.Context, cur *json.Cursor, v any, opts json.Options) {
	json.SkipWhitespace(ctx, cur, opts)
	if ctx.Failed() {
		return
	}
	start := cur.Pos()

	switch dst := v.(type) {
	case *string:
		if opts.Strict && cur.Peek() == '"' {
			probe := *cur
			json.SkipString(ctx, &probe, opts)
			if ctx.Failed() {
				return
			}
		}
		s := json.ParseString(ctx, cur, nil)
		if !ctx.Failed() {
			*dst = string(s)
		}
	case *json.RawValue:
		json.SkipValue(ctx, cur, opts)
		if !ctx.Failed() {
			*dst = append((*dst)[:0], cur.Since(start)...)
		}
	case *any:
		json.SkipValue(ctx, cur, opts)
		if ctx.Failed() {
			return
		}
		// Numbers stay json.Number so integers beyond 2^53 round-trip.
		dec := gojson.NewDecoder(bytes.NewReader(cur.Since(start)))
		dec.UseNumber()
		if err := dec.Decode(dst); err != nil {
			ctx.FailWith(json.SyntaxError, start, err)
		}
	default:
		json.SkipValue(ctx, cur, opts)
		if ctx.Failed() {
			return
		}
		if err := gojson.Unmarshal(cur.Since(start), v); err != nil {
			ctx.FailWith(json.SyntaxError, start, err)
		}
	}
}

// EncodeValue appends the encoding of v to sink.
func (Codec) EncodeValue(ctx *json.Context, v any, sink *json.Sink, _ json.Options) {
	if ctx.Failed() {
		return
	}
	switch src := v.(type) {
	case string:
		sink.AppendString(src)
	case *string:
		sink.AppendString(*src)
	case json.RawValue:
		writeRaw(sink, src)
	case *json.RawValue:
		writeRaw(sink, *src)
	default:
		b, err := gojson.Marshal(v)
		if err != nil {
			ctx.FailWith(json.SyntaxError, sink.Len(), err)
			return
		}
		_, _ = sink.Write(b)
	}
}

func writeRaw(sink *json.Sink, raw json.RawValue) {
	if len(raw) == 0 {
		raw = null
	}
	_, _ = sink.Write(raw)
}
