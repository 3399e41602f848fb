// Package source loads record files and streams, converting legacy
// encodings to UTF-8 before they reach the scanner.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BLAZED-sh/ndscan/pkg/json"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Auto selects the encoding from a byte order mark or by sniffing content.
const Auto = "auto"

var ErrUnknownCharset = errors.New("unknown charset")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func isUTF8(label string) bool {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// lookup resolves label to a decoder. A nil encoding means the input is
// already UTF-8.
func lookup(label string, sample []byte) (encoding.Encoding, error) {
	if isUTF8(label) {
		return nil, nil
	}
	if strings.EqualFold(label, Auto) {
		e, name, _ := charset.DetermineEncoding(sample, "")
		if name == "utf-8" {
			return nil, nil
		}
		return e, nil
	}
	e, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return e, nil
}

// Transcode converts data from the named charset to UTF-8 and drops a
// leading UTF-8 byte order mark.
func Transcode(data []byte, label string) ([]byte, error) {
	e, err := lookup(label, data)
	if err != nil {
		return nil, err
	}
	if e != nil {
		data, _, err = transform.Bytes(e.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", label, err)
		}
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

// NewReader wraps r so that it yields UTF-8.
func NewReader(r io.Reader, label string) (io.Reader, error) {
	if isUTF8(label) {
		return r, nil
	}
	if strings.EqualFold(label, Auto) {
		return charset.NewReader(r, "")
	}
	e, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return transform.NewReader(r, e.NewDecoder()), nil
}

// ReadFile reads and transcodes name. The result carries json.Padding
// bytes of spare capacity for the scanner.
func ReadFile(name, label string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	data, err = Transcode(data, label)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return json.Pad(data), nil
}

func WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}
