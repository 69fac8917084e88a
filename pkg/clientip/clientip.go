package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP extracts the originating client IP address from the request.
//
// When an X-Forwarded-For header is present, the leftmost comma-separated
// entry wins: in a proxy chain that is the address of the original client.
// Otherwise the direct peer address is used, with the port stripped when the
// address is in host:port form.
//
// The result is not validated as an IP address. Banning and presence tracking
// key on the string value as-is, and an empty string simply means no source
// was available.
func GetIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
