package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// IsEmailFormatValid is a shape check: one "@", a local part and a dotted
// domain without spaces.
func IsEmailFormatValid(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") || strings.Count(email, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" || domain == "" {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// IsEmailDomainValid accepts a domain with an MX record, or failing that
// any address record. Lookups give up after a few seconds.
func IsEmailDomainValid(email string) bool {
	if !IsEmailFormatValid(email) {
		return false
	}
	_, domain, _ := strings.Cut(email, "@")

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if addrs, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(addrs) > 0 {
		return true
	}
	return false
}
