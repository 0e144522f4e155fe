package validators

import (
	"net"
	"strings"
)

// DomainCheck reports whether mail can be delivered to the domain of email.
type DomainCheck func(email string) bool

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone trims the phone; an empty phone is stored as NULL so it
// never collides with the unique index.
func NormalizePhone(phone string) *string {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil
	}
	return &p
}

// IsEmailDomainValid looks up MX records and falls back to A/AAAA.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
