package cookie

import "time"

// ParseOption configures Parse and ParseSetCookie.
type ParseOption func(*parseOptions)

type parseOptions struct {
	decode DecodeFunc // default: Decode
}

// WithDecoder sets the value decoder. A nil decoder keeps the default.
func WithDecoder(dec DecodeFunc) ParseOption {
	return func(o *parseOptions) {
		if dec != nil {
			o.decode = dec
		}
	}
}

func newParseOptions(opts []ParseOption) parseOptions {
	o := parseOptions{decode: Decode}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// StringifyOption configures StringifyCookie and StringifySetCookie.
type StringifyOption func(*stringifyOptions)

type stringifyOptions struct {
	encode EncodeFunc // default: Encode
}

// WithEncoder sets the value encoder. A nil encoder keeps the default.
func WithEncoder(enc EncodeFunc) StringifyOption {
	return func(o *stringifyOptions) {
		if enc != nil {
			o.encode = enc
		}
	}
}

func newStringifyOptions(opts []StringifyOption) stringifyOptions {
	o := stringifyOptions{encode: Encode}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Attr sets one Set-Cookie attribute for Serialize.
type Attr func(*attrOptions)

type attrOptions struct {
	cookie    SetCookie
	encode    EncodeFunc
	maxAgeErr error
}

// AttrMaxAge sets Max-Age. The duration must be a whole number of seconds;
// anything else makes Serialize fail with ErrInvalidMaxAge.
func AttrMaxAge(d time.Duration) Attr {
	return func(o *attrOptions) {
		if d%time.Second != 0 {
			o.maxAgeErr = invalid(ErrInvalidMaxAge, d)
			o.cookie.MaxAge = nil
			return
		}
		secs := int(d / time.Second)
		o.maxAgeErr = nil
		o.cookie.MaxAge = &secs
	}
}

// AttrMaxAgeSeconds sets Max-Age in seconds.
func AttrMaxAgeSeconds(secs int) Attr {
	return func(o *attrOptions) {
		o.maxAgeErr = nil
		o.cookie.MaxAge = &secs
	}
}

// AttrExpires sets Expires.
func AttrExpires(t time.Time) Attr {
	return func(o *attrOptions) { o.cookie.Expires = t }
}

// AttrDomain sets Domain.
func AttrDomain(domain string) Attr {
	return func(o *attrOptions) { o.cookie.Domain = domain }
}

// AttrPath sets Path.
func AttrPath(path string) Attr {
	return func(o *attrOptions) { o.cookie.Path = path }
}

// AttrHTTPOnly sets the HttpOnly flag.
func AttrHTTPOnly(on bool) Attr {
	return func(o *attrOptions) { o.cookie.HTTPOnly = on }
}

// AttrSecure sets the Secure flag.
func AttrSecure(on bool) Attr {
	return func(o *attrOptions) { o.cookie.Secure = on }
}

// AttrPartitioned sets the Partitioned flag.
func AttrPartitioned(on bool) Attr {
	return func(o *attrOptions) { o.cookie.Partitioned = on }
}

// AttrPriority sets Priority. Matching is case-insensitive at serialization.
func AttrPriority(p Priority) Attr {
	return func(o *attrOptions) { o.cookie.Priority = p }
}

// AttrSameSite sets SameSite. Matching is case-insensitive at serialization.
func AttrSameSite(s SameSite) Attr {
	return func(o *attrOptions) { o.cookie.SameSite = s }
}

// AttrEncoder sets the value encoder used by Serialize.
func AttrEncoder(enc EncodeFunc) Attr {
	return func(o *attrOptions) {
		if enc != nil {
			o.encode = enc
		}
	}
}
