// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"otusite/internal/auth"
	"otusite/internal/middleware"
	"otusite/internal/session"
	"otusite/internal/store"
)

// SessionManager creates and destroys admin sessions.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups the admin authentication handlers.
type Auth struct {
	sessions  SessionManager
	admins    AdminFinder
	dummyHash string
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions SessionManager, admins AdminFinder) *Auth {
	// Unknown usernames are checked against this hash so both failure
	// paths cost one bcrypt comparison.
	dummy, err := auth.HashPassword("otusite-unknown-user")
	if err != nil {
		slog.Error("hash dummy password failed", "error", err)
	}
	return &Auth{
		sessions:  sessions,
		admins:    admins,
		dummyHash: dummy,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and starts a session. The response carries
// the CSRF token the client must echo on state-changing admin requests.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := a.admins.FindByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if user == nil {
		auth.VerifyPassword(body.Password, a.dummyHash)
		slog.Warn("login failed", "username", username, "ip", middleware.ClientIP(r))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.VerifyPassword(body.Password, user.PasswordHash) {
		slog.Warn("login failed", "username", username, "ip", middleware.ClientIP(r))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	data := &session.Data{AdminID: user.ID, Username: user.Username}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("admin logged in", "username", user.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"username":  user.Username,
		"csrfToken": data.CSRFToken,
	})
}

// Logout destroys the current session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Check reports whether the request carries an admin session.
func (a *Auth) Check(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if !sess.IsAdmin() {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      sess.Username,
		"csrfToken":     sess.CSRFToken,
	})
}
