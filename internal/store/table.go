// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for every persisted entity.
// Each store wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"otusite/internal/models"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Table implements list/get/create/update/delete for one content table.
// T is the record type and F its create/update payload.
type Table[T any, F models.Fields] struct {
	db      *sql.DB
	name    string
	columns string // SELECT/RETURNING list, in scan order
	orderBy string
	touch   string // timestamp column refreshed on update; empty for none
	scan    func(scanner) (*T, error)
}

// List returns every row in the table's natural order. An empty table
// yields an empty, non-nil slice.
func (t *Table[T, F]) List(ctx context.Context) ([]T, error) {
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+t.columns+" FROM "+t.name+" ORDER BY "+t.orderBy)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return items, nil
}

// Get returns the row with the given id, or ErrNotFound.
func (t *Table[T, F]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := t.scan(t.db.QueryRowContext(ctx,
		"SELECT "+t.columns+" FROM "+t.name+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", t.name, id, err)
	}
	return item, nil
}

// Create validates fields and inserts a new row, returning it with its
// assigned id and timestamps.
func (t *Table[T, F]) Create(ctx context.Context, fields F) (*T, error) {
	if err := fields.Validate(false); err != nil {
		return nil, err
	}

	cols, vals := fields.Columns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.name, strings.Join(cols, ", "), strings.Join(placeholders, ", "), t.columns)

	item, err := t.scan(t.db.QueryRowContext(ctx, query, vals...))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", t.name, err)
	}
	return item, nil
}

// Update applies the present fields to the row with the given id and
// returns the updated row. Absent fields keep their stored values.
// Returns ErrNotFound if no row has that id.
func (t *Table[T, F]) Update(ctx context.Context, id int64, fields F) (*T, error) {
	if err := fields.Validate(true); err != nil {
		return nil, err
	}

	cols, vals := fields.Columns()
	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	if len(sets) == 0 {
		return t.Get(ctx, id)
	}
	if t.touch != "" {
		sets = append(sets, t.touch+" = NOW()")
	}

	vals = append(vals, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		t.name, strings.Join(sets, ", "), len(vals), t.columns)

	item, err := t.scan(t.db.QueryRowContext(ctx, query, vals...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", t.name, id, err)
	}
	return item, nil
}

// Delete removes the row with the given id. It reports whether a row was
// removed; deleting a missing id is not an error.
func (t *Table[T, F]) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := t.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", t.name, id, err)
	}
	return n > 0, nil
}
