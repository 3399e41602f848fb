package json

var isWhitespace = [256]bool{
	'\t': true,
	'\n': true,
	'\r': true,
	' ':  true,
}

var isNumeric = [256]bool{
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'.': true, '+': true, '-': true, 'e': true, 'E': true,
}

// IsNumeric reports whether c may appear in a number token.
func IsNumeric(c byte) bool {
	return isNumeric[c]
}

func isDigit(c byte) bool {
	return c-'0' < 10
}

// escapeTable maps the byte after a backslash to its decoded value. Zero
// marks an invalid escape; 'u' is handled separately.
var escapeTable = [256]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

const invalidHex = 0xFF

var hexTable = func() (t [256]byte) {
	for i := range t {
		t[i] = invalidHex
	}
	for c := byte('0'); c <= '9'; c++ {
		t[c] = c - '0'
	}
	for c := byte('a'); c <= 'f'; c++ {
		t[c] = c - 'a' + 10
		t[c-'a'+'A'] = c - 'a' + 10
	}
	return t
}()
