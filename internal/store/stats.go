// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"otusite/internal/models"
)

const statsColumns = "id, member_count, trades_called, avg_profit, win_rate, success_rate, updated_at"

// StatsStore reads and writes the single stats row.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// ensure provisions the stats row with default values if it is missing.
// Concurrent callers race on the primary key, so at most one row is created.
func (s *StatsStore) ensure(ctx context.Context) error {
	d := models.DefaultStats()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stats (id, member_count, trades_called, avg_profit, win_rate, success_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, models.StatsID, d.MemberCount, d.TradesCalled, d.AvgProfit, d.WinRate, d.SuccessRate)
	if err != nil {
		return fmt.Errorf("ensure stats: %w", err)
	}
	return nil
}

// Get returns the stats row, creating it with defaults on first use.
func (s *StatsStore) Get(ctx context.Context) (*models.Stats, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	st, err := scanStats(s.db.QueryRowContext(ctx,
		"SELECT "+statsColumns+" FROM stats WHERE id = $1", models.StatsID))
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

// Update applies the present counters to the stats row and refreshes
// updated_at. The row is provisioned first if needed.
func (s *StatsStore) Update(ctx context.Context, fields models.StatsFields) (*models.Stats, error) {
	if err := fields.Validate(true); err != nil {
		return nil, err
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	cols, vals := fields.Columns()
	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	sets = append(sets, "updated_at = NOW()")
	vals = append(vals, models.StatsID)

	query := fmt.Sprintf("UPDATE stats SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(vals), statsColumns)

	st, err := scanStats(s.db.QueryRowContext(ctx, query, vals...))
	if err != nil {
		return nil, fmt.Errorf("update stats: %w", err)
	}
	return st, nil
}

func scanStats(s scanner) (*models.Stats, error) {
	var st models.Stats
	err := s.Scan(&st.ID, &st.MemberCount, &st.TradesCalled, &st.AvgProfit,
		&st.WinRate, &st.SuccessRate, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
