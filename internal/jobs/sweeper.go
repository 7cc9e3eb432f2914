// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"otusite/internal/storage"
)

// DefaultMinAge is how old an unreferenced upload must be before it is
// removed. Younger files may belong to a form that is still being filled.
const DefaultMinAge = 24 * time.Hour

// ReferenceChecker reports whether any content row mentions an upload.
type ReferenceChecker interface {
	IsReferenced(ctx context.Context, name string) (bool, error)
}

// Sweeper deletes uploads that no content references.
type Sweeper struct {
	backend storage.Backend
	refs    ReferenceChecker
	minAge  time.Duration
	now     func() time.Time
}

// NewSweeper creates a sweeper removing orphans older than minAge.
func NewSweeper(backend storage.Backend, refs ReferenceChecker, minAge time.Duration) *Sweeper {
	if minAge <= 0 {
		minAge = DefaultMinAge
	}
	return &Sweeper{backend: backend, refs: refs, minAge: minAge, now: time.Now}
}

// Sweep removes orphaned uploads and returns how many were deleted. A
// failure on one object is logged and does not stop the sweep.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	objects, err := s.backend.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list uploads: %w", err)
	}

	cutoff := s.now().Add(-s.minAge)
	deleted := 0
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if obj.ModTime.After(cutoff) {
			continue
		}

		used, err := s.refs.IsReferenced(ctx, obj.Name)
		if err != nil {
			slog.Warn("upload reference check failed", "name", obj.Name, "error", err)
			continue
		}
		if used {
			continue
		}

		if err := s.backend.Delete(ctx, obj.Name); err != nil {
			slog.Warn("delete orphaned upload failed", "name", obj.Name, "error", err)
			continue
		}
		slog.Info("orphaned upload removed", "name", obj.Name, "size", obj.Size)
		deleted++
	}
	return deleted, nil
}
