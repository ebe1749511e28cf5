package cookie

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// minPairLen is the shortest input that can hold a pair: one name byte and '='.
const minPairLen = 2

// expiresLayouts are tried after http.ParseTime, which already covers
// IMF-fixdate, RFC 850 and asctime.
var expiresLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2-Jan-2006 15:04:05 MST",
	"Mon, 2-Jan-06 15:04:05 MST",
	"Mon, 2 Jan 06 15:04:05 MST",
	time.RFC1123Z,
	time.RFC3339,
}

// Parse parses a Cookie header value into a name/value map.
// Pairs without '=' are skipped, duplicate names keep their first value and
// values that fail to decode are kept raw. Parse never fails.
func Parse(str string, opts ...ParseOption) Cookies {
	out := Cookies{}
	n := len(str)
	if n < minPairLen {
		return out
	}

	dec := newParseOptions(opts).decode
	index := 0
	for index < n {
		eq := strings.IndexByte(str[index:], '=')
		if eq == -1 {
			break
		}
		eq += index

		end := endIndex(str, index, n)
		if eq > end {
			// The '=' belongs to a later pair: restart just past the last ';' before it.
			index = strings.LastIndexByte(str[:eq], ';') + 1
			continue
		}

		key := trimOWS(str[index:eq])
		if _, ok := out[key]; !ok {
			out[key] = decodeOrRaw(dec, unquote(trimOWS(str[eq+1:end])))
		}
		index = end + 1
	}
	return out
}

// ParseCookie is an alias for Parse.
func ParseCookie(str string, opts ...ParseOption) Cookies {
	return Parse(str, opts...)
}

// ParseSetCookie parses a single Set-Cookie header value.
// Unknown attributes and attributes with malformed values are ignored.
func ParseSetCookie(str string, opts ...ParseOption) SetCookie {
	dec := newParseOptions(opts).decode
	n := len(str)

	var sc SetCookie
	end := endIndex(str, 0, n)
	if eq := eqIndex(str, 0, end); eq == -1 {
		sc.Value = decodeOrRaw(dec, unquote(trimOWS(str[:end])))
	} else {
		sc.Name = trimOWS(str[:eq])
		sc.Value = decodeOrRaw(dec, unquote(trimOWS(str[eq+1:end])))
	}

	for index := end + 1; index < n; {
		end := endIndex(str, index, n)
		var attr, val string
		if eq := eqIndex(str, index, end); eq == -1 {
			attr = trimOWS(str[index:end])
		} else {
			attr = trimOWS(str[index:eq])
			val = trimOWS(str[eq+1 : end])
		}
		applyAttribute(&sc, attr, val)
		index = end + 1
	}
	return sc
}

func applyAttribute(sc *SetCookie, attr, val string) {
	switch strings.ToLower(attr) {
	case "httponly":
		sc.HTTPOnly = true
	case "secure":
		sc.Secure = true
	case "partitioned":
		sc.Partitioned = true
	case "domain":
		sc.Domain = val
	case "path":
		sc.Path = val
	case "max-age":
		if v, ok := parseMaxAge(val); ok {
			sc.MaxAge = &v
		}
	case "expires":
		if t, ok := parseExpires(val); ok {
			sc.Expires = t
		}
	case "priority":
		if p, ok := ParsePriority(val); ok {
			sc.Priority = p
		}
	case "samesite":
		if s, ok := ParseSameSite(val); ok {
			sc.SameSite = s
		}
	}
}

// parseMaxAge accepts an optional '-' followed by digits only.
func parseMaxAge(s string) (int, bool) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseExpires(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := http.ParseTime(s); err == nil {
		return resolveZone(t)
	}
	for _, layout := range expiresLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return resolveZone(t)
		}
	}
	return time.Time{}, false
}

// usZones are the RFC 822 zone names with their offsets in seconds.
var usZones = map[string]int{
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// resolveZone converts t to UTC. time.Parse records an unknown zone
// abbreviation with a zero offset, so a zero offset is only trusted for
// GMT, UT, UTC and numeric zones; the US zones get their real offset and
// anything else is rejected.
func resolveZone(t time.Time) (time.Time, bool) {
	name, offset := t.Zone()
	if offset != 0 {
		return t.UTC(), true
	}
	switch name {
	case "", "GMT", "UT", "UTC", "Z":
		return t.UTC(), true
	}
	offset, ok := usZones[name]
	if !ok {
		return time.Time{}, false
	}
	zoned := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, offset))
	return zoned.UTC(), true
}

// endIndex returns the index of the next ';' at or after from, or n.
func endIndex(str string, from, n int) int {
	if i := strings.IndexByte(str[from:], ';'); i != -1 {
		return from + i
	}
	return n
}

// eqIndex returns the index of the first '=' in str[from:to], or -1.
func eqIndex(str string, from, to int) int {
	if i := strings.IndexByte(str[from:to], '='); i != -1 {
		return from + i
	}
	return -1
}

// trimOWS strips spaces and horizontal tabs from both ends of s.
func trimOWS(s string) string {
	return strings.Trim(s, " \t")
}

// unquote removes one layer of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
