// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package testutil

import (
	"context"
	"sync"
	"time"

	"otusite/internal/auth"
	"otusite/internal/models"
	"otusite/internal/store"
)

// Stats is an in-memory stats singleton starting at the defaults.
type Stats struct {
	mu    sync.Mutex
	stats models.Stats

	Err error
}

// NewStats creates the singleton with default values.
func NewStats() *Stats {
	return &Stats{stats: models.DefaultStats()}
}

func (s *Stats) Get(_ context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st := s.stats
	return &st, nil
}

func (s *Stats) Update(_ context.Context, f models.StatsFields) (*models.Stats, error) {
	if err := f.Validate(true); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	set(&s.stats.MemberCount, f.MemberCount)
	set(&s.stats.TradesCalled, f.TradesCalled)
	set(&s.stats.AvgProfit, f.AvgProfit)
	set(&s.stats.WinRate, f.WinRate)
	set(&s.stats.SuccessRate, f.SuccessRate)
	s.stats.UpdatedAt = time.Now()
	st := s.stats
	return &st, nil
}

// Visitors is an in-memory visitor log.
type Visitors struct {
	mu       sync.Mutex
	visitors []models.Visitor

	Err error
}

// NewVisitors creates an empty log.
func NewVisitors() *Visitors {
	return &Visitors{}
}

func (v *Visitors) List(_ context.Context) ([]models.Visitor, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.Err != nil {
		return nil, v.Err
	}
	return append([]models.Visitor{}, v.visitors...), nil
}

// Add appends a visitor record as-is.
func (v *Visitors) Add(visitor models.Visitor) {
	v.mu.Lock()
	defer v.mu.Unlock()
	visitor.ID = int64(len(v.visitors) + 1)
	v.visitors = append(v.visitors, visitor)
}

func (v *Visitors) Track(_ context.Context, nv models.NewVisitor) (*models.Visitor, bool, error) {
	if err := nv.Validate(); err != nil {
		return nil, false, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.Err != nil {
		return nil, false, v.Err
	}
	for _, existing := range v.visitors {
		if existing.SessionID == nv.SessionID {
			return &existing, false, nil
		}
	}

	now := time.Now()
	visitor := models.Visitor{
		ID:           int64(len(v.visitors) + 1),
		SessionID:    nv.SessionID,
		IPAddress:    nv.IPAddress,
		UserAgent:    nv.UserAgent,
		Referrer:     nv.Referrer,
		LandingPage:  nv.LandingPage,
		IsTiktok:     nv.IsTiktok,
		FirstVisit:   now,
		LastActivity: now,
		PageViews:    1,
	}
	v.visitors = append(v.visitors, visitor)
	return &visitor, true, nil
}

func (v *Visitors) Update(_ context.Context, sessionID string, upd models.VisitorUpdate) (*models.Visitor, error) {
	if err := upd.Validate(true); err != nil {
		return nil, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.Err != nil {
		return nil, v.Err
	}
	for i := range v.visitors {
		if v.visitors[i].SessionID != sessionID {
			continue
		}
		set(&v.visitors[i].TotalDuration, upd.TotalDuration)
		set(&v.visitors[i].PageViews, upd.PageViews)
		set(&v.visitors[i].ConvertedToTelegram, upd.ConvertedToTelegram)
		v.visitors[i].LastActivity = time.Now()
		visitor := v.visitors[i]
		return &visitor, nil
	}
	return nil, store.ErrNotFound
}

// Admins is an in-memory admin account table.
type Admins struct {
	mu    sync.Mutex
	users map[string]models.AdminUser
}

// NewAdmins creates an empty account table.
func NewAdmins() *Admins {
	return &Admins{users: map[string]models.AdminUser{}}
}

// Add stores an admin with a bcrypt hash of password.
func (a *Admins) Add(username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[username] = models.AdminUser{
		ID:           int64(len(a.users) + 1),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	return nil
}

func (a *Admins) FindByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}
