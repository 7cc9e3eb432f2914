// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"otusite/internal/models"
)

const visitorColumns = `id, session_id, ip_address, user_agent, referrer, landing_page, is_tiktok,
	first_visit, last_activity, total_duration, page_views, converted_to_telegram`

// VisitorStore handles the visitor log used for analytics.
type VisitorStore struct {
	db *sql.DB
}

// NewVisitorStore creates a new VisitorStore with the given database connection.
func NewVisitorStore(db *sql.DB) *VisitorStore {
	return &VisitorStore{db: db}
}

// List returns every visitor ordered by first visit, oldest first.
func (s *VisitorStore) List(ctx context.Context) ([]models.Visitor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+visitorColumns+" FROM visitors ORDER BY first_visit, id")
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	visitors := []models.Visitor{}
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, *v)
	}
	return visitors, rows.Err()
}

// Track records a new visitor. If the session id is already known the
// existing row is returned unchanged and created is false.
func (s *VisitorStore) Track(ctx context.Context, nv models.NewVisitor) (v *models.Visitor, created bool, err error) {
	if err := nv.Validate(); err != nil {
		return nil, false, err
	}

	v, err = scanVisitor(s.db.QueryRowContext(ctx, `
		INSERT INTO visitors (session_id, ip_address, user_agent, referrer, landing_page, is_tiktok)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING `+visitorColumns,
		nv.SessionID, nv.IPAddress, nv.UserAgent, nv.Referrer, nv.LandingPage, nv.IsTiktok))
	if err == nil {
		return v, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("track visitor: %w", err)
	}

	v, err = s.FindBySession(ctx, nv.SessionID)
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// FindBySession returns the visitor with the given session id, or ErrNotFound.
func (s *VisitorStore) FindBySession(ctx context.Context, sessionID string) (*models.Visitor, error) {
	v, err := scanVisitor(s.db.QueryRowContext(ctx,
		"SELECT "+visitorColumns+" FROM visitors WHERE session_id = $1", sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	return v, nil
}

// Update applies activity counters to a visitor and refreshes
// last_activity. Returns ErrNotFound for an unknown session id.
func (s *VisitorStore) Update(ctx context.Context, sessionID string, upd models.VisitorUpdate) (*models.Visitor, error) {
	if err := upd.Validate(true); err != nil {
		return nil, err
	}

	cols, vals := upd.Columns()
	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	sets = append(sets, "last_activity = NOW()")
	vals = append(vals, sessionID)

	query := fmt.Sprintf("UPDATE visitors SET %s WHERE session_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(vals), visitorColumns)

	v, err := scanVisitor(s.db.QueryRowContext(ctx, query, vals...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update visitor: %w", err)
	}
	return v, nil
}

func scanVisitor(s scanner) (*models.Visitor, error) {
	var v models.Visitor
	err := s.Scan(&v.ID, &v.SessionID, &v.IPAddress, &v.UserAgent, &v.Referrer,
		&v.LandingPage, &v.IsTiktok, &v.FirstVisit, &v.LastActivity,
		&v.TotalDuration, &v.PageViews, &v.ConvertedToTelegram)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
