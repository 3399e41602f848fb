package ndjson

import (
	"path/filepath"
	"testing"

	"github.com/BLAZED-sh/ndscan/pkg/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	A int `json:"a"`
}

const threeRecords = `{"a":1}` + "\n" + `{"a":2}` + "\n" + `{"a":3}`

func TestWrite(t *testing.T) {
	out, err := Marshal([]record{{1}, {2}, {3}})
	require.NoError(t, err)
	assert.Equal(t, threeRecords, string(out))

	out, err = Marshal([]record{})
	require.NoError(t, err)
	assert.Empty(t, out)

	sink := json.NewSink(0)
	require.NoError(t, Write(Tuple{ptr("x"), &record{A: 4}, ptr(5)}, sink))
	assert.Equal(t, "\"x\"\n{\"a\":4}\n5", string(sink.Bytes()))
}

func TestReadGrowable(t *testing.T) {
	records, err := Unmarshal[record]([]byte(threeRecords))
	require.NoError(t, err)
	assert.Equal(t, []record{{1}, {2}, {3}}, records)

	existing := []record{{9}}
	require.NoError(t, Read(Grow(&existing), []byte(threeRecords)))
	assert.Equal(t, []record{{1}, {2}, {3}}, existing)
}

func TestReadBoundedShrinks(t *testing.T) {
	dst := make([]record, 5)
	require.NoError(t, Read(Bound(&dst), []byte(threeRecords)))
	assert.Equal(t, []record{{1}, {2}, {3}}, dst)

	dst = make([]record, 5, 8)
	require.NoError(t, Read(Bound(&dst), []byte(threeRecords), WithShrinkToFit()))
	assert.Len(t, dst, 3)
	assert.Equal(t, 3, cap(dst))
}

func TestReadFixed(t *testing.T) {
	dst := []record{{7}, {7}, {7}, {7}, {7}}
	require.NoError(t, Read(Fixed(dst), []byte(threeRecords)))
	assert.Equal(t, []record{{1}, {2}, {3}, {7}, {7}}, dst)

	small := make([]record, 2)
	err := Read(Fixed(small), []byte(threeRecords))
	assert.ErrorIs(t, err, json.ErrExceededStaticArraySize)
	var jerr *json.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, 16, jerr.Offset)

	err = Read(Bound(&small), []byte(threeRecords))
	assert.ErrorIs(t, err, json.ErrExceededStaticArraySize)
}

func TestReadTuple(t *testing.T) {
	var (
		name  string
		rec   record
		count int
	)
	require.NoError(t, Read(Tuple{&name, &rec, &count}, []byte("\"n\"\n{\"a\":2}\n3\n")))
	assert.Equal(t, "n", name)
	assert.Equal(t, record{2}, rec)
	assert.Equal(t, 3, count)

	count = -1
	require.NoError(t, Read(Tuple{&name, &count}, []byte(`"only"`)))
	assert.Equal(t, "only", name)
	assert.Equal(t, -1, count)
}

func TestReadSeparators(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []int

		wantCode   json.ErrorCode
		wantOffset int
	}{
		{name: "crlf", input: "1\r\n2\r\n3", want: []int{1, 2, 3}},
		{name: "trailing newline", input: "1\n2\n", want: []int{1, 2}},
		{name: "blank lines", input: "\n\n1\n\n \n2\r\n\r\n", want: []int{1, 2}},
		{name: "blanks before terminator", input: "1 \t\n2", want: []int{1, 2}},
		{name: "empty input", input: "", want: nil},
		{name: "whitespace only", input: " \n ", want: nil},
		{name: "comment lines", input: "// head\n1\n/* x */\n2\n// tail", want: []int{1, 2}},
		{name: "comment after record", input: "1 // c\n2", wantCode: json.SyntaxError, wantOffset: 2},
		{name: "lone carriage return", input: "1\r2", wantCode: json.SyntaxError, wantOffset: 2},
		{name: "carriage return at end", input: "1\r", wantCode: json.SyntaxError, wantOffset: 2},
		{name: "records on one line", input: "1 2", wantCode: json.SyntaxError, wantOffset: 2},
		{name: "bad record", input: "1\n{\"a\":}", wantCode: json.SyntaxError, wantOffset: 2},
		{name: "truncated record", input: "1\n[2,", wantCode: json.UnexpectedEnd, wantOffset: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []int
			err := Read(Grow(&got), []byte(tc.input))
			if tc.wantCode == json.None {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			var jerr *json.Error
			require.ErrorAs(t, err, &jerr)
			assert.Equal(t, tc.wantCode, jerr.Code)
			assert.Equal(t, tc.wantOffset, jerr.Offset)
		})
	}
}

func TestReadEmptyClears(t *testing.T) {
	dst := []record{{1}, {2}}
	require.NoError(t, Read(Grow(&dst), nil))
	assert.Empty(t, dst)
}

func TestReadStrict(t *testing.T) {
	var got []json.RawValue
	err := Read(Grow(&got), []byte("{\"a\":1}\n{\"a\":01}"), WithStrict(true), WithFile("in.ndjson"))
	require.Error(t, err)
	assert.Equal(t, "in.ndjson:14: syntax_error", err.Error())

	got = nil
	require.NoError(t, Read(Grow(&got), []byte("{\"a\":1}\n{\"a\":01}")))
	assert.Equal(t, []json.RawValue{json.RawValue(`{"a":1}`), json.RawValue(`{"a":01}`)}, got)
}

func TestFileRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.ndjson")
	in := []record{{1}, {2}, {3}}
	require.NoError(t, WriteFile(Fixed(in), name))

	var out []record
	require.NoError(t, ReadFile(Grow(&out), name))
	assert.Equal(t, in, out)

	err := ReadFile(Grow(&out), filepath.Join(t.TempDir(), "missing.ndjson"))
	assert.Error(t, err)
}

func TestReadFileCharset(t *testing.T) {
	name := filepath.Join(t.TempDir(), "latin1.ndjson")
	require.NoError(t, WriteFile(Fixed([]json.RawValue{json.RawValue("\"caf\xe9\"")}), name))

	var out []string
	require.NoError(t, ReadFile(Grow(&out), name, WithCharset("latin1")))
	assert.Equal(t, []string{"caf\u00e9"}, out)
}

func ptr[T any](v T) *T {
	return &v
}
