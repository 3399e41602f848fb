package json

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func naiveIndexEscapeOrQuote(b []byte, i, end int) int {
	for ; i < end; i++ {
		if b[i] == '"' || b[i] == '\\' {
			return i
		}
	}
	return -1
}

func naiveIndexUnescapedQuote(b []byte, i, end int) int {
	for i < end {
		switch b[i] {
		case '"':
			return i
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return -1
}

func randomBuffer(r *rand.Rand, n int) []byte {
	const alphabet = "ab \"\\x/{}\x00\xff"
	b := make([]byte, n)
	for i := range b {
		if r.IntN(4) == 0 {
			b[i] = alphabet[r.IntN(len(alphabet))]
		} else {
			b[i] = 'a' + byte(r.IntN(26))
		}
	}
	return b
}

func withWideWindows(t *testing.T, wide bool) {
	prev := WideWindows
	WideWindows = wide
	t.Cleanup(func() { WideWindows = prev })
}

func TestScanEquivalence(t *testing.T) {
	for _, wide := range []bool{false, true} {
		name := "narrow"
		if wide {
			name = "wide"
		}
		t.Run(name, func(t *testing.T) {
			withWideWindows(t, wide)
			r := rand.New(rand.NewPCG(1, uint64(len(name))))
			for n := 0; n < 200; n++ {
				buf := randomBuffer(r, n%80)
				for start := 0; start <= len(buf) && start < 10; start++ {
					assert.Equal(t,
						naiveIndexEscapeOrQuote(buf, start, len(buf)),
						indexEscapeOrQuote(buf, start, len(buf)),
						"escape or quote in %q from %d", buf, start)
					assert.Equal(t,
						naiveIndexUnescapedQuote(buf, start, len(buf)),
						indexUnescapedQuote(buf, start, len(buf)),
						"unescaped quote in %q from %d", buf, start)
				}
			}
		})
	}
}

func TestWordTests(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		test  func(uint64) uint64
		want  int
	}{
		{"quote first", `"abcdefg`, hasQuote, 0},
		{"quote last", `abcdefg"`, hasQuote, 7},
		{"no quote", `abcdefgh`, hasQuote, 8},
		{"escape", `ab\cdefg`, hasEscape, 2},
		{"slash", `abcd/efg`, hasForwardSlash, 4},
		{"zero", "abc\x00defg", hasZero, 3},
		{"brace", `aaaaa{aa`, func(w uint64) uint64 { return hasByte(w, '{') }, 5},
		{"control", "abcdef\ng", func(w uint64) uint64 { return hasLess(w, 0x20) }, 6},
		{"high bytes are not control", "\xff\x80\xc3\xa9abcd", func(w uint64) uint64 { return hasLess(w, 0x20) }, 8},
		{"quote after escape", `a\"bcdef`, func(w uint64) uint64 { return hasQuote(w) | hasEscape(w) }, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := load64([]byte(tc.input))
			assert.Equal(t, tc.want, firstMatch(tc.test(w)))
		})
	}
}

func TestLowBytes(t *testing.T) {
	w := load64([]byte(`abc"efgh`))
	assert.Equal(t, 8, firstMatch(hasQuote(lowBytes(w, 3))))
	assert.Equal(t, 3, firstMatch(hasQuote(lowBytes(w, 4))))
	assert.Equal(t, w, lowBytes(w, 8))
}
