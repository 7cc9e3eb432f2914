// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package testutil provides in-memory stand-ins for the PostgreSQL and
// Valkey backed repositories, for handler and router tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"otusite/internal/models"
	"otusite/internal/store"
)

// Collection is an in-memory content repository with the same contract
// as store.Table. Set Err to make every call fail.
type Collection[T any, F models.Fields] struct {
	mu     sync.Mutex
	items  map[int64]T
	nextID int64
	apply  func(dst *T, id int64, f F)

	Err error
}

// NewCollection creates an empty collection. apply copies the present
// fields of a payload onto a record and stamps its id.
func NewCollection[T any, F models.Fields](apply func(dst *T, id int64, f F)) *Collection[T, F] {
	return &Collection[T, F]{items: map[int64]T{}, apply: apply}
}

func (c *Collection[T, F]) List(_ context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.items[id])
	}
	return out, nil
}

func (c *Collection[T, F]) Get(_ context.Context, id int64) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	item, ok := c.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (c *Collection[T, F]) Create(_ context.Context, fields F) (*T, error) {
	if err := fields.Validate(false); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	c.nextID++
	var item T
	c.apply(&item, c.nextID, fields)
	c.items[c.nextID] = item
	return &item, nil
}

func (c *Collection[T, F]) Update(_ context.Context, id int64, fields F) (*T, error) {
	if err := fields.Validate(true); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	item, ok := c.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.apply(&item, id, fields)
	c.items[id] = item
	return &item, nil
}

func (c *Collection[T, F]) Delete(_ context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	if _, ok := c.items[id]; !ok {
		return false, nil
	}
	delete(c.items, id)
	return true, nil
}

// Len returns the number of stored records.
func (c *Collection[T, F]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
