// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"net/http"
)

// CSRFHeaderName is the header admin clients send the session's CSRF token in.
// The token is returned by the login and session-check endpoints.
const CSRFHeaderName = "X-CSRF-Token"

// RequireCSRFToken validates that state-changing requests carry the CSRF
// token bound to the current session. Must be applied after LoadSession
// and RequireAdmin.
func RequireCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		sess := SessionFromCtx(r.Context())
		submitted := r.Header.Get(CSRFHeaderName)
		if sess == nil || sess.CSRFToken == "" || submitted == "" ||
			subtle.ConstantTimeCompare([]byte(sess.CSRFToken), []byte(submitted)) != 1 {
			writeError(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
