package ndjson

import (
	"context"
	"io"

	"github.com/BLAZED-sh/ndscan/pkg/json"
	"github.com/BLAZED-sh/ndscan/pkg/source"
	"github.com/rs/zerolog"
)

// Decoder reads records from a stream without holding the whole input in
// memory. Records are framed by the same separator rules as Read.
type Decoder struct {
	lexer  *json.StreamLexer
	opts   *options
	logger zerolog.Logger
	err    error

	records int
}

// NewDecoder returns a Decoder reading from r. Decoding stops when ctx is
// cancelled.
func NewDecoder(ctx context.Context, r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)
	d := &Decoder{opts: o, logger: o.logger.With().Str("component", "ndjson").Logger()}

	r, err := source.NewReader(r, o.charset)
	if err != nil {
		d.err = err
		return d
	}

	d.lexer = json.NewStreamLexer(ctx, r, o.bufferSize, o.maxRead)
	d.lexer.SetOptions(o.json)
	d.lexer.SetDelimited(true)
	d.lexer.SetLogger(d.logger)
	d.lexer.SetMaxRecordSize(o.maxRecordSize)
	return d
}

// Each calls fn with the raw bytes of every record in order. The slice is
// only valid until fn returns. The first read, scan or callback error stops
// decoding and is returned.
func (d *Decoder) Each(fn func(record []byte) error) error {
	if d.err != nil {
		return d.err
	}
	d.lexer.DecodeAll(func(record []byte) error {
		d.records++
		return fn(record)
	}, func(err error) {
		d.logger.Debug().Err(err).Int("records", d.records).Msg("Record stream failed")
		d.err = err
	})
	if d.err == nil {
		d.logger.Debug().Int("records", d.records).Msg("Record stream finished")
	}
	return d.err
}

// Records returns how many records have been handed out so far.
func (d *Decoder) Records() int {
	return d.records
}

// DecodeStream decodes every record of d into a T and passes it to fn.
func DecodeStream[T any](d *Decoder, fn func(T) error) error {
	return d.Each(func(record []byte) error {
		var v T
		ctx := json.Context{File: d.opts.file}
		d.opts.codec.DecodeValue(&ctx, json.NewCursor(record), &v, d.opts.json)
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(v)
	})
}
