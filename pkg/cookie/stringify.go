package cookie

import (
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// StringifyCookie builds a Cookie header value from c. Names are emitted in
// sorted order. Any invalid name or encoded value aborts with an error
// wrapping ErrInvalidName or ErrInvalidValue.
func StringifyCookie(c Cookies, opts ...StringifyOption) (string, error) {
	enc := newStringifyOptions(opts).encode

	pairs := make([]string, 0, len(c))
	for _, name := range slices.Sorted(maps.Keys(c)) {
		if !ValidName(name) {
			return "", invalid(ErrInvalidName, name)
		}
		val := c[name]
		encoded := enc(val)
		if !ValidValue(encoded) {
			return "", invalid(ErrInvalidValue, val)
		}
		pairs = append(pairs, name+"="+encoded)
	}
	return strings.Join(pairs, "; "), nil
}

// StringifySetCookie builds a Set-Cookie header value from c.
// Attributes are written in the order Max-Age, Domain, Path, Expires,
// HttpOnly, Secure, Partitioned, Priority, SameSite. Validation errors wrap
// ErrInvalidArgument and nothing is returned alongside them.
func StringifySetCookie(c SetCookie, opts ...StringifyOption) (string, error) {
	return stringifySetCookie(&c, newStringifyOptions(opts).encode, nil)
}

// Serialize builds a Set-Cookie header value from a name, a value and
// attribute options.
//
//	Serialize("foo", "bar", AttrHTTPOnly(true)) // "foo=bar; HttpOnly"
func Serialize(name, value string, attrs ...Attr) (string, error) {
	o := attrOptions{encode: Encode}
	for _, attr := range attrs {
		if attr != nil {
			attr(&o)
		}
	}
	o.cookie.Name = name
	o.cookie.Value = value
	return stringifySetCookie(&o.cookie, o.encode, o.maxAgeErr)
}

func stringifySetCookie(c *SetCookie, enc EncodeFunc, maxAgeErr error) (string, error) {
	if !ValidName(c.Name) {
		return "", invalid(ErrInvalidName, c.Name)
	}

	var value string
	if c.Value != "" {
		value = enc(c.Value)
	}
	if !ValidValue(value) {
		return "", invalid(ErrInvalidValue, c.Value)
	}

	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(value)

	if maxAgeErr != nil {
		return "", maxAgeErr
	}
	if c.MaxAge != nil {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(*c.MaxAge))
	}

	if c.Domain != "" {
		if !ValidDomain(c.Domain) {
			return "", invalid(ErrInvalidDomain, c.Domain)
		}
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}

	if c.Path != "" {
		if !ValidPath(c.Path) {
			return "", invalid(ErrInvalidPath, c.Path)
		}
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}

	if !c.Expires.IsZero() {
		if !ValidExpires(c.Expires) {
			return "", invalid(ErrInvalidExpires, c.Expires)
		}
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(http.TimeFormat))
	}

	if c.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.Partitioned {
		b.WriteString("; Partitioned")
	}

	if c.Priority != "" {
		p, ok := ParsePriority(string(c.Priority))
		if !ok {
			return "", invalid(ErrInvalidPriority, c.Priority)
		}
		b.WriteString("; Priority=")
		b.WriteString(attrCase(string(p)))
	}

	if c.SameSite != "" {
		s, ok := ParseSameSite(string(c.SameSite))
		if !ok {
			return "", invalid(ErrInvalidSameSite, c.SameSite)
		}
		b.WriteString("; SameSite=")
		b.WriteString(attrCase(string(s)))
	}

	return b.String(), nil
}
