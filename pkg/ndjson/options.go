package ndjson

import (
	"github.com/BLAZED-sh/ndscan/pkg/codec"
	"github.com/BLAZED-sh/ndscan/pkg/json"
	"github.com/rs/zerolog"
)

// ValueCodec decodes and encodes single records. Implementations must
// honor the sticky error in ctx and leave the cursor on the byte after the
// value they decode.
type ValueCodec interface {
	DecodeValue(ctx *json.Context, cur *json.Cursor, v any, opts json.Options)
	EncodeValue(ctx *json.Context, v any, sink *json.Sink, opts json.Options)
}

type options struct {
	codec   ValueCodec
	json    json.Options
	file    string
	charset string
	shrink  bool

	bufferSize    int
	maxRead       int
	maxRecordSize int
	logger        zerolog.Logger
}

type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		codec:      codec.Default,
		bufferSize: 16384,
		maxRead:    4096,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithCodec(c ValueCodec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithStrict enables full grammar validation of every record.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.json.Strict = strict
	}
}

// WithFile names the source in error messages.
func WithFile(name string) Option {
	return func(o *options) {
		o.file = name
	}
}

// WithCharset sets the encoding of files and streams. See source.Transcode.
func WithCharset(label string) Option {
	return func(o *options) {
		o.charset = label
	}
}

// WithShrinkToFit releases spare capacity when a read truncates its
// destination.
func WithShrinkToFit() Option {
	return func(o *options) {
		o.shrink = true
	}
}

// WithBuffer sets the initial buffer size and per-read size of a Decoder.
func WithBuffer(size, maxRead int) Option {
	return func(o *options) {
		o.bufferSize = size
		o.maxRead = maxRead
	}
}

func WithMaxRecordSize(n int) Option {
	return func(o *options) {
		o.maxRecordSize = n
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
