package ndjson

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/BLAZED-sh/ndscan/pkg/json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStream(t *testing.T) {
	input := "{\"a\":1}\n{\"a\":2}\r\n\n{\"a\":3}\n"
	r := iotest.OneByteReader(strings.NewReader(input))
	d := NewDecoder(context.Background(), r, WithBuffer(8, 1))

	var got []record
	err := DecodeStream(d, func(rec record) error {
		got = append(got, rec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []record{{1}, {2}, {3}}, got)
	assert.Equal(t, 3, d.Records())
}

func TestDecoderEachLogs(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	d := NewDecoder(context.Background(), strings.NewReader("1\n2\n3"), WithLogger(logger))

	var got []string
	require.NoError(t, d.Each(func(b []byte) error {
		got = append(got, string(b))
		return nil
	}))
	assert.Equal(t, []string{"1", "2", "3"}, got)
	assert.Contains(t, logs.String(), `"component":"ndjson"`)
	assert.Contains(t, logs.String(), `"records":3`)
}

func TestDecodeStreamErrors(t *testing.T) {
	d := NewDecoder(context.Background(), strings.NewReader("{\"a\":1}\n{\"a\":\"x\"}\n"))
	var got []record
	err := DecodeStream(d, func(rec record) error {
		got = append(got, rec)
		return nil
	})
	assert.ErrorIs(t, err, json.ErrSyntax)
	assert.Len(t, got, 1)

	stop := errors.New("stop")
	d = NewDecoder(context.Background(), strings.NewReader("1\n2\n"))
	err = DecodeStream(d, func(int) error { return stop })
	assert.ErrorIs(t, err, stop)

	d = NewDecoder(context.Background(), strings.NewReader("[1,\n2"), WithStrict(true))
	err = d.Each(func([]byte) error { return nil })
	assert.ErrorIs(t, err, json.ErrUnexpectedEnd)
}

func TestDecodeStreamMatchesRead(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "records on one line", input: "{\"a\":1} {\"a\":2}\n"},
		{name: "lone carriage return", input: "{\"a\":1}\r{\"a\":2}\n"},
		{name: "carriage return at end", input: "{\"a\":1}\r"},
		{name: "valid", input: "{\"a\":1}\r\n\n// c\n{\"a\":2}\n"},
		{name: "split comment", input: "{\"a\":1}\n/* long comment */\n{\"a\":2}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var want []record
			wantErr := Read(Grow(&want), []byte(tc.input))

			r := iotest.OneByteReader(strings.NewReader(tc.input))
			d := NewDecoder(context.Background(), r, WithBuffer(8, 1))
			var got []record
			err := DecodeStream(d, func(rec record) error {
				got = append(got, rec)
				return nil
			})

			if wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, want, got)
				return
			}
			var wantJSON, gotJSON *json.Error
			require.ErrorAs(t, wantErr, &wantJSON)
			require.ErrorAs(t, err, &gotJSON)
			assert.Equal(t, wantJSON.Code, gotJSON.Code)
			assert.Equal(t, wantJSON.Offset, gotJSON.Offset)
		})
	}
}

func TestDecoderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDecoder(ctx, strings.NewReader("1\n2\n"))
	err := d.Each(func([]byte) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecoderCharset(t *testing.T) {
	d := NewDecoder(context.Background(), strings.NewReader("\"caf\xe9\"\n"), WithCharset("latin1"))
	var got []string
	require.NoError(t, DecodeStream(d, func(s string) error {
		got = append(got, s)
		return nil
	}))
	assert.Equal(t, []string{"caf\u00e9"}, got)

	d = NewDecoder(context.Background(), strings.NewReader(""), WithCharset("bogus"))
	assert.Error(t, d.Each(func([]byte) error { return nil }))
}
