package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP returns the visitor's IP address in canonical form.
// Lookup order:
//  1. CF-Connecting-IP (CDN edge)
//  2. X-Forwarded-For (first valid entry)
//  3. X-Real-IP (reverse proxy)
//  4. RemoteAddr
//
// Returns the empty string when no candidate parses as a valid address.
func GetIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for ip := range strings.SplitSeq(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare address
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and canonicalizes an address string, returning the
// empty string for anything that does not parse
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}

	return ip.String()
}
