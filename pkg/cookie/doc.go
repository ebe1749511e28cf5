// Package cookie converts between HTTP Cookie / Set-Cookie header strings
// and structured values, and provides an HTTP Manager built on top of that
// codec with optional signing and encryption.
//
// Parsing is permissive: malformed pairs and unknown attributes are
// dropped, and values that fail to decode are kept as sent. Serialization
// is strict: every name, value and attribute is checked against the
// RFC 6265 grammars before anything is written.
//
// # Parsing
//
// A Cookie request header becomes a map. The first occurrence of a name wins:
//
//	c := cookie.Parse(`sid=abc; theme="dark"; sid=ignored`)
//	// cookie.Cookies{"sid": "abc", "theme": "dark"}
//
// A Set-Cookie response header becomes a SetCookie record:
//
//	sc := cookie.ParseSetCookie("id=a3fWa; Max-Age=2592000; Secure; SameSite=Lax")
//	// sc.Name == "id", *sc.MaxAge == 2592000, sc.Secure, sc.SameSite == cookie.SameSiteLax
//
// Values are percent-decoded by default. Use [WithDecoder] for another scheme.
//
// # Serialization
//
//	header, err := cookie.StringifyCookie(cookie.Cookies{"a": "1", "b": "2"})
//	// "a=1; b=2"
//
//	header, err = cookie.Serialize("sid", "abc",
//		cookie.AttrMaxAge(time.Hour),
//		cookie.AttrPath("/"),
//		cookie.AttrHTTPOnly(true),
//		cookie.AttrSameSite(cookie.SameSiteStrict),
//	)
//	// "sid=abc; Max-Age=3600; Path=/; HttpOnly; SameSite=Strict"
//
// [StringifySetCookie] does the same from a SetCookie record.
//
// # Manager
//
// The Manager handles plain, signed, and encrypted cookies, plus flash messages.
// Secrets are optional; encrypted and signed operations return [ErrNoSecret] without one.
//
//	m := cookie.New(
//		cookie.WithSecret("your-32+-byte-secret-key-here!!"),
//		cookie.WithSecure(true),
//	)
//	err := m.SetSigned(w, "session", sessionID, 86400)
//	value, err := m.GetSigned(r, "session")
//
// Wrap handlers with [Manager.Middleware] to parse the Cookie header once per
// request and read it back with [FromContext].
//
// # Errors
//
// Every serialization failure wraps [ErrInvalidArgument] and one of
// [ErrInvalidName], [ErrInvalidValue], [ErrInvalidMaxAge], [ErrInvalidDomain],
// [ErrInvalidPath], [ErrInvalidExpires], [ErrInvalidPriority] or
// [ErrInvalidSameSite]. Manager operations add:
//   - [ErrNotFound]: Cookie does not exist
//   - [ErrNoSecret]: Secret required for signed/encrypted operations
//   - [ErrBadSig]: Signature verification failed (tampering detected)
//   - [ErrDecrypt]: Decryption failed (tampering or corruption detected)
package cookie
