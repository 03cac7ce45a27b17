// Package network provides network-related utilities.
package network

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP resolves the originating client address of a request.
// Proxy headers win over the socket address: the first X-Forwarded-For
// hop, then X-Real-IP. Without either, RemoteAddr is used with its
// port stripped.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr carried no port; use it as-is.
		return r.RemoteAddr
	}
	return host
}
