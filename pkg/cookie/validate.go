package cookie

import (
	"regexp"
	"time"
)

// domainRe matches an RFC 1034 subdomain (labels of at most 63 characters)
// with an optional leading dot.
var domainRe = regexp.MustCompile(`(?i)^([.]?[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)([.][a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)

// ValidName reports whether s is a usable cookie name: printable ASCII
// without ';' and '='. This is wider than the RFC token grammar.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x21 || c > 0x7e || c == ';' || c == '=' {
			return false
		}
	}
	return true
}

// ValidValue reports whether s is a usable encoded cookie value: printable
// ASCII without ';'. The empty value is valid.
func ValidValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x21 || c > 0x7e || c == ';' {
			return false
		}
	}
	return true
}

// ValidDomain reports whether s matches the Domain attribute grammar.
func ValidDomain(s string) bool {
	return domainRe.MatchString(s)
}

// ValidPath reports whether s matches the Path attribute grammar: no
// controls, no ';' and no '<'.
func ValidPath(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e || c == ';' || c == '<' {
			return false
		}
	}
	return true
}

// ValidExpires reports whether t can be written as an HTTP-date.
func ValidExpires(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	y := t.UTC().Year()
	return y >= 1601 && y <= 9999
}
