package cookie

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

// DecodeFunc decodes a raw cookie value. A non-nil error makes the parser
// keep the raw value.
type DecodeFunc func(string) (string, error)

// EncodeFunc encodes a cookie value before it is validated and written.
type EncodeFunc func(string) string

var errMalformedUTF8 = errors.New("cookie: decoded value is not valid UTF-8")

const upperhex = "0123456789ABCDEF"

// Decode percent-decodes s. Input without '%' is returned as is. '+' is not
// treated as a space.
func Decode(s string) (string, error) {
	if strings.IndexByte(s, '%') == -1 {
		return s, nil
	}
	out, err := url.PathUnescape(s)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(out) {
		return "", errMalformedUTF8
	}
	return out, nil
}

// Encode percent-encodes every byte of s except ASCII letters, digits and
// the marks - _ . ! ~ * ' ( ).
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// decodeOrRaw applies dec and falls back to raw on failure.
func decodeOrRaw(dec DecodeFunc, raw string) string {
	v, err := dec(raw)
	if err != nil {
		return raw
	}
	return v
}
