package cookie

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cookies maps cookie names to decoded values as found in a Cookie header.
type Cookies map[string]string

// Priority is the value of the Priority attribute.
type Priority string

// Priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SameSite is the value of the SameSite attribute.
type SameSite string

// SameSite values.
const (
	SameSiteStrict SameSite = "strict"
	SameSiteLax    SameSite = "lax"
	SameSiteNone   SameSite = "none"
)

// SetCookie is a single Set-Cookie header in structured form.
// Zero values mean the attribute is not specified, except MaxAge where nil
// means unset and a pointer to zero is an explicit "Max-Age=0".
type SetCookie struct {
	Expires     time.Time `json:"expires,omitzero" yaml:"expires,omitempty"`
	MaxAge      *int      `json:"maxAge,omitempty" yaml:"max_age,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Value       string    `json:"value" yaml:"value"`
	Domain      string    `json:"domain,omitempty" yaml:"domain,omitempty"`
	Path        string    `json:"path,omitempty" yaml:"path,omitempty"`
	Priority    Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	SameSite    SameSite  `json:"sameSite,omitempty" yaml:"same_site,omitempty"`
	HTTPOnly    bool      `json:"httpOnly,omitempty" yaml:"http_only,omitempty"`
	Secure      bool      `json:"secure,omitempty" yaml:"secure,omitempty"`
	Partitioned bool      `json:"partitioned,omitempty" yaml:"partitioned,omitempty"`
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(s)); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// ParseSameSite matches s case-insensitively against the known modes.
func ParseSameSite(s string) (SameSite, bool) {
	switch ss := SameSite(strings.ToLower(s)); ss {
	case SameSiteStrict, SameSiteLax, SameSiteNone:
		return ss, true
	}
	return "", false
}

// SameSiteFromHTTP converts the net/http enum. SameSiteDefaultMode maps to
// Strict; unknown values map to the empty (unset) mode.
func SameSiteFromHTTP(s http.SameSite) SameSite {
	switch s {
	case http.SameSiteDefaultMode, http.SameSiteStrictMode:
		return SameSiteStrict
	case http.SameSiteLaxMode:
		return SameSiteLax
	case http.SameSiteNoneMode:
		return SameSiteNone
	default:
		return ""
	}
}

// attrCase renders a normalized enum the way it is written on the wire
// ("low" -> "Low"). A Caser keeps state, so one is built per call.
func attrCase(s string) string {
	return cases.Title(language.Und).String(s)
}
