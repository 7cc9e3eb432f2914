// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"otusite/internal/session"
)

// Sessions is an in-memory session store using the real cookie name.
type Sessions struct {
	mu   sync.Mutex
	data map[string]session.Data
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{data: map[string]session.Data{}}
}

func (s *Sessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	id := uuid.NewString()
	data.CSRFToken = uuid.NewString()
	data.CreatedAt = time.Now()

	s.mu.Lock()
	s.data[id] = *data
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(session.DefaultTTL.Seconds()),
	})
	return id, nil
}

func (s *Sessions) Get(_ context.Context, r *http.Request) (*session.Data, error) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[cookie.Value]
	if !ok {
		return nil, nil
	}
	return &data, nil
}

func (s *Sessions) Destroy(_ context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		s.mu.Lock()
		delete(s.data, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:   session.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return nil
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
