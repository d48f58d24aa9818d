package utils

import (
	"net/http"
	"strings"
)

// RequestBaseURL returns "scheme://host" for the request.
// If trustProxy is true, X-Forwarded-Proto and X-Forwarded-Host win over the
// connection's own values.
func RequestBaseURL(r *http.Request, trustProxy bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if trustProxy {
		if v := FirstForwardedFor(r.Header.Get("X-Forwarded-Proto")); v == "https" || v == "http" {
			scheme = v
		}
		if v := FirstForwardedFor(r.Header.Get("X-Forwarded-Host")); v != "" {
			host = v
		}
	}

	return scheme + "://" + strings.TrimSuffix(host, "/")
}
