package requestinfo

import (
	"net/http"
	"strings"
)

// Unknown is the placeholder for an IP or user agent that could not be
// determined from the request headers.
const Unknown = "unknown"

// ClientIP resolves the best-effort client address from proxy headers. The
// first header present wins; values are not validated as IP syntax.
func ClientIP(h http.Header) string {
	if forwarded := h.Get("x-forwarded-for"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := h.Get("x-real-ip"); realIP != "" {
		return realIP
	}
	if cfIP := h.Get("cf-connecting-ip"); cfIP != "" {
		return cfIP
	}
	if clientIP := h.Get("x-client-ip"); clientIP != "" {
		return clientIP
	}
	return Unknown
}

// RawUserAgent returns the raw User-Agent header value.
func RawUserAgent(h http.Header) string {
	if ua := h.Get("user-agent"); ua != "" {
		return ua
	}
	return Unknown
}
