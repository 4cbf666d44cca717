package marker

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText is returned by Decode for content that is not decodable text.
var ErrNotText = errors.New("content is not text")

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file bytes to a string. Input is UTF-8 unless it starts
// with a UTF-16 byte order mark; a UTF-8 byte order mark is dropped. Control
// characters are text; only bytes that do not decode are rejected.
func Decode(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	utf16 := bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE)
	if !utf16 && !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid UTF-8, detected %s", ErrNotText, mimetype.Detect(raw).String())
	}

	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}

	return string(out), nil
}
