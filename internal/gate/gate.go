// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gate issues short-lived tokens that unlock members-only video
// lessons. Tokens are HMAC-signed expiry timestamps; nothing is stored.
package gate

import (
	"crypto/subtle"
	"strconv"
	"strings"
	"time"

	"otusite/internal/session"
)

const (
	// DefaultTTL is how long an unlock token stays valid.
	DefaultTTL = 24 * time.Hour

	// HeaderName carries the unlock token on public requests.
	HeaderName = "X-Content-Token"

	tokenPrefix = "unlock:"
)

// Gate checks the unlock password and validates issued tokens.
type Gate struct {
	secret   []byte
	password string
	ttl      time.Duration
	now      func() time.Time
}

// New creates a Gate. An empty password disables unlocking entirely.
func New(secret, password string) *Gate {
	return &Gate{
		secret:   []byte(secret),
		password: password,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

// Enabled reports whether an unlock password is configured.
func (g *Gate) Enabled() bool {
	return g != nil && g.password != ""
}

// Unlock issues a token when password matches the configured one.
func (g *Gate) Unlock(password string) (token string, expires time.Time, ok bool) {
	if !g.Enabled() {
		return "", time.Time{}, false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return "", time.Time{}, false
	}
	expires = g.now().Add(g.ttl).UTC().Truncate(time.Second)
	token = session.Sign(g.secret, tokenPrefix+strconv.FormatInt(expires.Unix(), 10))
	return token, expires, true
}

// Valid reports whether token was issued by this gate and has not expired.
func (g *Gate) Valid(token string) bool {
	if !g.Enabled() || token == "" {
		return false
	}
	value, ok := session.Verify(g.secret, token)
	if !ok || !strings.HasPrefix(value, tokenPrefix) {
		return false
	}
	unix, err := strconv.ParseInt(strings.TrimPrefix(value, tokenPrefix), 10, 64)
	if err != nil {
		return false
	}
	return g.now().Before(time.Unix(unix, 0))
}
