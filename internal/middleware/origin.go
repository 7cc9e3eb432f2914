// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CheckOrigin rejects state-changing requests under /api/admin/ whose
// Origin or Referer does not name the serving host. It is a coarse check
// on client-supplied headers; RequireCSRFToken is the primary defence.
// When enforce is false (development) every request passes.
func CheckOrigin(enforce bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enforce || isSafeMethod(r.Method) || !strings.HasPrefix(r.URL.Path, "/api/admin/") {
				next.ServeHTTP(w, r)
				return
			}

			if !sameHost(r.Header.Get("Origin"), r.Host) && !sameHost(r.Header.Get("Referer"), r.Host) {
				writeError(w, "Invalid request origin", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// sameHost reports whether the URL in header names host (including port).
func sameHost(header, host string) bool {
	if header == "" || host == "" {
		return false
	}
	u, err := url.Parse(header)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
