package ipinfo

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP retrieves the visitor's apparent address from the request.
// An explicit ?ip= query parameter wins, then the first X-Forwarded-For
// hop, then the connection's remote address.
func ClientIP(r *http.Request) string {
	if ip := r.URL.Query().Get("ip"); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
