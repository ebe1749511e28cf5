package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/dmitrymomot/cookie/pkg/logger"
)

// Manager reads cookies from requests and writes Set-Cookie headers using
// shared attribute defaults. It is safe for concurrent use.
type Manager struct {
	log         *slog.Logger
	now         func() time.Time
	encode      EncodeFunc
	decode      DecodeFunc
	secret      []byte // nil = no encryption/signing
	domain      string
	path        string
	sameSite    SameSite
	priority    Priority
	secure      bool
	httpOnly    bool
	partitioned bool
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		log:      logger.NewNope(),
		now:      time.Now,
		encode:   Encode,
		decode:   Decode,
		path:     "/",
		httpOnly: true,
		sameSite: SameSiteLax,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret sets the secret for signing and encryption.
// Must be at least 32 bytes.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= 32 {
			m.secret = []byte(secret)
		}
	}
}

// WithDomain sets the cookie domain. Internationalized names are converted
// to their ASCII form.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = asciiDomain(domain)
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = SameSiteFromHTTP(ss)
	}
}

// WithPartitioned sets the Partitioned flag.
func WithPartitioned(partitioned bool) Option {
	return func(m *Manager) {
		m.partitioned = partitioned
	}
}

// WithPriority sets the Priority attribute.
func WithPriority(p Priority) Option {
	return func(m *Manager) {
		m.priority = p
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock sets the time source used to compute Expires.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCodec replaces the value encoder and decoder. Nil keeps the default.
func WithCodec(enc EncodeFunc, dec DecodeFunc) Option {
	return func(m *Manager) {
		if enc != nil {
			m.encode = enc
		}
		if dec != nil {
			m.decode = dec
		}
	}
}

// All returns every cookie sent with the request.
func (m *Manager) All(r *http.Request) Cookies {
	return maps.Clone(m.requestCookies(r))
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	v, ok := m.requestCookies(r)[name]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set sets a plain cookie.
// maxAge > 0 sets Max-Age and Expires, maxAge < 0 deletes the cookie and
// maxAge == 0 makes a session cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) error {
	header, err := StringifySetCookie(m.cookie(name, value, maxAge), WithEncoder(m.encode))
	if err != nil {
		m.log.Error("cookie: failed to serialize",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) error {
	return m.Set(w, name, "", -1)
}

// GetSigned returns a signed cookie value.
// Returns ErrNoSecret if no secret is configured.
// Returns ErrBadSig if signature verification fails.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	value, err := m.verify(raw)
	if err != nil {
		m.log.DebugContext(r.Context(), "cookie: signature rejected", slog.String("name", name))
		return "", err
	}
	return value, nil
}

// SetSigned sets a signed cookie.
// Returns ErrNoSecret if no secret is configured.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	return m.Set(w, name, m.sign(value), maxAge)
}

// GetEncrypted returns an encrypted cookie value.
// Returns ErrNoSecret if no secret is configured.
// Returns ErrDecrypt if decryption fails.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		m.log.DebugContext(r.Context(), "cookie: malformed ciphertext", slog.String("name", name))
		return "", ErrDecrypt
	}

	plaintext, err := decrypt(m.secret, data)
	if err != nil {
		m.log.DebugContext(r.Context(), "cookie: decryption rejected", slog.String("name", name))
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// SetEncrypted sets an encrypted cookie.
// Returns ErrNoSecret if no secret is configured.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	ciphertext, err := encrypt(m.secret, []byte(value))
	if err != nil {
		return err
	}

	return m.Set(w, name, base64.RawURLEncoding.EncodeToString(ciphertext), maxAge)
}

// Flash reads and deletes a flash message.
// Returns ErrNoSecret if no secret is configured.
// Returns ErrNotFound if the flash cookie doesn't exist.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	name := "flash_" + key
	raw, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}

	// Delete after reading
	if err := m.Delete(w, name); err != nil {
		return err
	}

	return json.Unmarshal([]byte(raw), dest)
}

// SetFlash sets a flash message.
// Returns ErrNoSecret if no secret is configured.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return m.SetEncrypted(w, "flash_"+key, string(data), 0)
}

// requestCookies returns the cookies stored by Middleware, or parses the
// request's Cookie headers. Multiple headers are treated as one list.
func (m *Manager) requestCookies(r *http.Request) Cookies {
	if c, ok := r.Context().Value(cookiesKey{}).(Cookies); ok {
		return c
	}
	return Parse(strings.Join(r.Header.Values("Cookie"), "; "), WithDecoder(m.decode))
}

// cookie creates a Set-Cookie record with the manager's defaults.
func (m *Manager) cookie(name, value string, maxAge int) SetCookie {
	c := SetCookie{
		Name:        name,
		Value:       value,
		Path:        m.path,
		Domain:      m.domain,
		Secure:      m.secure,
		HTTPOnly:    m.httpOnly,
		Partitioned: m.partitioned,
		SameSite:    m.sameSite,
		Priority:    m.priority,
	}
	switch {
	case maxAge > 0:
		c.MaxAge = &maxAge
		c.Expires = m.now().Add(time.Duration(maxAge) * time.Second)
	case maxAge < 0:
		zero := 0
		c.MaxAge = &zero
		c.Expires = time.Unix(0, 0)
	}
	return c
}

// sign formats value as base64(value).base64(hmac).
func (m *Manager) sign(value string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(raw string) (string, error) {
	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}

	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}

	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", ErrBadSig
	}
	return string(value), nil
}

// asciiDomain converts a domain with non-ASCII labels to its A-label form.
// ASCII input and unconvertible input are returned unchanged and left to
// the Domain grammar check at serialization time.
func asciiDomain(domain string) string {
	if isASCII(domain) {
		return domain
	}
	lead := ""
	if strings.HasPrefix(domain, ".") {
		lead, domain = ".", domain[1:]
	}
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return lead + domain
	}
	return lead + ascii
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
