// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"otusite/internal/models"
)

// Lister returns every record of a collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Collection is the uniform repository contract shared by all content
// types. store.Table satisfies it.
type Collection[T any, F models.Fields] interface {
	Lister[T]
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, fields F) (*T, error)
	Update(ctx context.Context, id int64, fields F) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Content bundles the six content collections.
type Content struct {
	Testimonials Collection[models.Testimonial, models.TestimonialFields]
	Videos       Collection[models.VideoLesson, models.VideoLessonFields]
	Blog         Collection[models.BlogPost, models.BlogPostFields]
	Modules      Collection[models.Module, models.ModuleFields]
	Glossary     Collection[models.GlossaryTerm, models.GlossaryTermFields]
	Watchlist    Collection[models.Stock, models.StockFields]
}

// StatsRepo reads and updates the stats singleton.
type StatsRepo interface {
	Get(ctx context.Context) (*models.Stats, error)
	Update(ctx context.Context, fields models.StatsFields) (*models.Stats, error)
}

// VisitorRepo records and lists visitor sessions.
type VisitorRepo interface {
	Lister[models.Visitor]
	Track(ctx context.Context, nv models.NewVisitor) (*models.Visitor, bool, error)
	Update(ctx context.Context, sessionID string, upd models.VisitorUpdate) (*models.Visitor, error)
}

// AdminFinder looks up admin accounts.
type AdminFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}
