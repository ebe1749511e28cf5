package cookie_test

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookie/pkg/cookie"
)

func identity(s string) string { return s }

func TestStringifyCookie(t *testing.T) {
	t.Parallel()

	t.Run("single entry", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifyCookie(cookie.Cookies{"key": "value"})
		require.NoError(t, err)
		assert.Equal(t, "key=value", got)
	})

	t.Run("multiple entries in name order", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifyCookie(cookie.Cookies{"b": "2", "a": "1"})
		require.NoError(t, err)
		assert.Equal(t, "a=1; b=2", got)
	})

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifyCookie(cookie.Cookies{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("encodes values", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifyCookie(cookie.Cookies{"q": "a b;c"})
		require.NoError(t, err)
		assert.Equal(t, "q=a%20b%3Bc", got)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifyCookie(cookie.Cookies{"test=": ""})
		require.ErrorIs(t, err, cookie.ErrInvalidName)
		assert.Empty(t, got)
	})

	t.Run("error names the cookie", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.StringifyCookie(cookie.Cookies{"bad name": "x"})
		require.ErrorIs(t, err, cookie.ErrInvalidArgument)
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
		assert.Contains(t, err.Error(), `"bad name"`)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.StringifyCookie(cookie.Cookies{"test": ";"}, cookie.WithEncoder(identity))
		require.ErrorIs(t, err, cookie.ErrInvalidValue)
		assert.ErrorIs(t, err, cookie.ErrInvalidArgument)
	})

	t.Run("nothing emitted when a later pair fails", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifyCookie(cookie.Cookies{"a": "1", "z z": "2"})
		require.Error(t, err)
		assert.Empty(t, got)
	})
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	t.Run("name and value", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar")
		require.NoError(t, err)
		assert.Equal(t, "foo=bar", got)
	})

	t.Run("url-encodes value", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar +baz")
		require.NoError(t, err)
		assert.Equal(t, "foo=bar%20%2Bbaz", got)
	})

	t.Run("empty value", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "")
		require.NoError(t, err)
		assert.Equal(t, "foo=", got)
	})

	t.Run("custom encoder", func(t *testing.T) {
		t.Parallel()

		b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
		got, err := cookie.Serialize("foo", "bar", cookie.AttrEncoder(b64))
		require.NoError(t, err)
		assert.Equal(t, "foo=YmFy", got)
	})

	t.Run("all attributes in order", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar",
			cookie.AttrSameSite(cookie.SameSiteLax),
			cookie.AttrPriority(cookie.PriorityHigh),
			cookie.AttrPartitioned(true),
			cookie.AttrSecure(true),
			cookie.AttrHTTPOnly(true),
			cookie.AttrExpires(time.Date(2000, 12, 24, 10, 30, 59, 900_000_000, time.UTC)),
			cookie.AttrPath("/"),
			cookie.AttrDomain("example.com"),
			cookie.AttrMaxAge(10*time.Second),
		)
		require.NoError(t, err)
		assert.Equal(t,
			"foo=bar; Max-Age=10; Domain=example.com; Path=/; Expires=Sun, 24 Dec 2000 10:30:59 GMT; HttpOnly; Secure; Partitioned; Priority=High; SameSite=Lax",
			got,
		)
	})
}

func TestSerializeName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"foo", "foo,bar", "foo!bar", "foo#bar", "foo$bar", "foo'bar", "foo*bar",
		"foo+bar", "foo-bar", "foo.bar", "foo^bar", "foo_bar", "foo`bar", "foo|bar",
		"foo~bar", "foo7bar", "foo/bar", "foo@bar", "foo[bar", "foo]bar", "foo:bar",
		"foo{bar", "foo}bar", `foo"bar`, "foo<bar", "foo>bar", "foo?bar", `foo\bar`,
	}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize(name, "baz")
			require.NoError(t, err)
			assert.Equal(t, name+"=baz", got)
		})
	}

	invalid := []string{"", "foo\n", "foo⠊", "foo=bar", "foo;bar", "foo bar", "foo\tbar"}
	for _, name := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			t.Parallel()

			_, err := cookie.Serialize(name, "bar")
			assert.ErrorIs(t, err, cookie.ErrInvalidName)
		})
	}
}

func TestSerializeValue(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"foo=bar", `foo"bar`, "foo,bar", `foo\bar`, "foo$bar"} {
		t.Run("valid "+value, func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize("foo", value, cookie.AttrEncoder(identity))
			require.NoError(t, err)
			assert.Equal(t, "foo="+value, got)
		})
	}

	for _, value := range []string{"+\n", "foo bar", "foo\tbar", "foo;bar", "foo⠊"} {
		t.Run("invalid "+value, func(t *testing.T) {
			t.Parallel()

			_, err := cookie.Serialize("foo", value, cookie.AttrEncoder(identity))
			assert.ErrorIs(t, err, cookie.ErrInvalidValue)
		})
	}
}

func TestSerializeDomain(t *testing.T) {
	t.Parallel()

	for _, domain := range []string{"example.com", "sub.example.com", ".example.com", "localhost", ".localhost", "my-site.org", "EXAMPLE.com"} {
		t.Run("valid "+domain, func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize("foo", "bar", cookie.AttrDomain(domain))
			require.NoError(t, err)
			assert.Equal(t, "foo=bar; Domain="+domain, got)
		})
	}

	invalid := []string{
		"example.com\n",
		"sub.example.com\u0000",
		"my site.org",
		"domain..com",
		"example.com; Path=/",
		"example.com /* inject a comment */",
		"-example.com",
		"example-.com",
		"example.com.",
	}
	for _, domain := range invalid {
		t.Run("invalid "+domain, func(t *testing.T) {
			t.Parallel()

			_, err := cookie.Serialize("foo", "bar", cookie.AttrDomain(domain))
			assert.ErrorIs(t, err, cookie.ErrInvalidDomain)
		})
	}
}

func TestSerializePath(t *testing.T) {
	t.Parallel()

	valid := []string{"/", "/login", "/foo.bar/baz", "/foo-bar", "/foo=bar?baz", `/foo"bar"`, "/../foo/bar", "../foo/", "./"}
	for _, path := range valid {
		t.Run("valid "+path, func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize("foo", "bar", cookie.AttrPath(path))
			require.NoError(t, err)
			assert.Equal(t, "foo=bar; Path="+path, got)
		})
	}

	invalid := []string{"/\n", "/foo\u0000", "/path/with\rnewline", "/; Path=/sensitive-data", `/login"><script>alert(1)</script>`}
	for _, path := range invalid {
		t.Run("invalid "+path, func(t *testing.T) {
			t.Parallel()

			_, err := cookie.Serialize("foo", "bar", cookie.AttrPath(path))
			assert.ErrorIs(t, err, cookie.ErrInvalidPath)
		})
	}
}

func TestSerializeMaxAge(t *testing.T) {
	t.Parallel()

	t.Run("whole seconds", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar", cookie.AttrMaxAge(1000*time.Second))
		require.NoError(t, err)
		assert.Equal(t, "foo=bar; Max-Age=1000", got)
	})

	t.Run("zero", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar", cookie.AttrMaxAgeSeconds(0))
		require.NoError(t, err)
		assert.Equal(t, "foo=bar; Max-Age=0", got)
	})

	t.Run("negative", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar", cookie.AttrMaxAge(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, "foo=bar; Max-Age=-1", got)
	})

	t.Run("fractional seconds fail", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar", cookie.AttrMaxAge(3140*time.Millisecond))
		require.ErrorIs(t, err, cookie.ErrInvalidMaxAge)
		assert.ErrorIs(t, err, cookie.ErrInvalidArgument)
		assert.Empty(t, got)
	})

	t.Run("later valid option wins", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar",
			cookie.AttrMaxAge(1500*time.Millisecond),
			cookie.AttrMaxAgeSeconds(2),
		)
		require.NoError(t, err)
		assert.Equal(t, "foo=bar; Max-Age=2", got)
	})

	t.Run("name is checked first", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.Serialize("bad name", "bar", cookie.AttrMaxAge(time.Millisecond))
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})
}

func TestSerializeExpires(t *testing.T) {
	t.Parallel()

	t.Run("formats as http date", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar", cookie.AttrExpires(time.Date(2000, 12, 24, 10, 30, 59, 900_000_000, time.UTC)))
		require.NoError(t, err)
		assert.Equal(t, "foo=bar; Expires=Sun, 24 Dec 2000 10:30:59 GMT", got)
	})

	t.Run("converts to utc", func(t *testing.T) {
		t.Parallel()

		loc := time.FixedZone("UTC+2", 2*60*60)
		got, err := cookie.Serialize("foo", "bar", cookie.AttrExpires(time.Date(2000, 12, 24, 12, 30, 59, 0, loc)))
		require.NoError(t, err)
		assert.Equal(t, "foo=bar; Expires=Sun, 24 Dec 2000 10:30:59 GMT", got)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.Serialize("foo", "bar", cookie.AttrExpires(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.ErrorIs(t, err, cookie.ErrInvalidExpires)
	})

	t.Run("zero time is unset", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.Serialize("foo", "bar", cookie.AttrExpires(time.Time{}))
		require.NoError(t, err)
		assert.Equal(t, "foo=bar", got)
	})
}

func TestSerializeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr cookie.Attr
		want string
	}{
		{name: "httpOnly true", attr: cookie.AttrHTTPOnly(true), want: "foo=bar; HttpOnly"},
		{name: "httpOnly false", attr: cookie.AttrHTTPOnly(false), want: "foo=bar"},
		{name: "secure true", attr: cookie.AttrSecure(true), want: "foo=bar; Secure"},
		{name: "secure false", attr: cookie.AttrSecure(false), want: "foo=bar"},
		{name: "partitioned true", attr: cookie.AttrPartitioned(true), want: "foo=bar; Partitioned"},
		{name: "partitioned false", attr: cookie.AttrPartitioned(false), want: "foo=bar"},
		{name: "nil attr", attr: nil, want: "foo=bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize("foo", "bar", tt.attr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   cookie.Priority
		want string
	}{
		{in: cookie.PriorityLow, want: "foo=bar; Priority=Low"},
		{in: cookie.PriorityMedium, want: "foo=bar; Priority=Medium"},
		{in: cookie.PriorityHigh, want: "foo=bar; Priority=High"},
		{in: "HIGH", want: "foo=bar; Priority=High"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize("foo", "bar", cookie.AttrPriority(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.Serialize("foo", "bar", cookie.AttrPriority("foo"))
		assert.ErrorIs(t, err, cookie.ErrInvalidPriority)
	})
}

func TestSerializeSameSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   cookie.SameSite
		want string
	}{
		{in: cookie.SameSiteStrict, want: "foo=bar; SameSite=Strict"},
		{in: cookie.SameSiteLax, want: "foo=bar; SameSite=Lax"},
		{in: cookie.SameSiteNone, want: "foo=bar; SameSite=None"},
		{in: "Lax", want: "foo=bar; SameSite=Lax"},
		{in: cookie.SameSiteFromHTTP(http.SameSiteDefaultMode), want: "foo=bar; SameSite=Strict"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()

			got, err := cookie.Serialize("foo", "bar", cookie.AttrSameSite(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.Serialize("foo", "bar", cookie.AttrSameSite("foo"))
		assert.ErrorIs(t, err, cookie.ErrInvalidSameSite)
	})
}

func TestStringifySetCookie(t *testing.T) {
	t.Parallel()

	t.Run("record", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifySetCookie(cookie.SetCookie{Name: "foo", Value: "bar +baz"})
		require.NoError(t, err)
		assert.Equal(t, "foo=bar%20%2Bbaz", got)
	})

	t.Run("record with encoder", func(t *testing.T) {
		t.Parallel()

		got, err := cookie.StringifySetCookie(cookie.SetCookie{Name: "foo", Value: "a b"}, cookie.WithEncoder(identity))
		require.ErrorIs(t, err, cookie.ErrInvalidValue)
		assert.Empty(t, got)
	})

	t.Run("invalid name in record", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.StringifySetCookie(cookie.SetCookie{Name: "a;b"})
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})

	t.Run("explicit zero max-age", func(t *testing.T) {
		t.Parallel()

		zero := 0
		got, err := cookie.StringifySetCookie(cookie.SetCookie{Name: "foo", MaxAge: &zero})
		require.NoError(t, err)
		assert.Equal(t, "foo=; Max-Age=0", got)
	})
}
