// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"

	"otusite/internal/models"
)

// Content stores, one per collection.
type (
	TestimonialStore  = Table[models.Testimonial, models.TestimonialFields]
	VideoLessonStore  = Table[models.VideoLesson, models.VideoLessonFields]
	BlogPostStore     = Table[models.BlogPost, models.BlogPostFields]
	ModuleStore       = Table[models.Module, models.ModuleFields]
	GlossaryTermStore = Table[models.GlossaryTerm, models.GlossaryTermFields]
	StockStore        = Table[models.Stock, models.StockFields]
)

// NewTestimonialStore creates the testimonials store.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{
		db:      db,
		name:    "testimonials",
		columns: "id, name, testimonial, profit, rating, date, photo, profit_image, created_at",
		orderBy: "id",
		scan: func(s scanner) (*models.Testimonial, error) {
			var t models.Testimonial
			err := s.Scan(&t.ID, &t.Name, &t.Testimonial, &t.Profit, &t.Rating, &t.Date,
				&t.Photo, &t.ProfitImage, &t.CreatedAt)
			if err != nil {
				return nil, err
			}
			return &t, nil
		},
	}
}

// NewVideoLessonStore creates the video library store.
func NewVideoLessonStore(db *sql.DB) *VideoLessonStore {
	return &VideoLessonStore{
		db:      db,
		name:    "video_lessons",
		columns: "id, title, description, duration, category, thumbnail, video_url, youtube_id, locked, created_at",
		orderBy: "id",
		scan: func(s scanner) (*models.VideoLesson, error) {
			var v models.VideoLesson
			err := s.Scan(&v.ID, &v.Title, &v.Description, &v.Duration, &v.Category,
				&v.Thumbnail, &v.VideoURL, &v.YoutubeID, &v.Locked, &v.CreatedAt)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}

// NewBlogPostStore creates the blog store.
func NewBlogPostStore(db *sql.DB) *BlogPostStore {
	return &BlogPostStore{
		db:      db,
		name:    "blog_posts",
		columns: "id, title, excerpt, content, author, date, category, read_time, created_at",
		orderBy: "id",
		scan: func(s scanner) (*models.BlogPost, error) {
			var p models.BlogPost
			err := s.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.Date,
				&p.Category, &p.ReadTime, &p.CreatedAt)
			if err != nil {
				return nil, err
			}
			return &p, nil
		},
	}
}

// NewModuleStore creates the course module store.
func NewModuleStore(db *sql.DB) *ModuleStore {
	return &ModuleStore{
		db:      db,
		name:    "modules",
		columns: "id, title, content, created_at",
		orderBy: "id",
		scan: func(s scanner) (*models.Module, error) {
			var m models.Module
			if err := s.Scan(&m.ID, &m.Title, &m.Content, &m.CreatedAt); err != nil {
				return nil, err
			}
			return &m, nil
		},
	}
}

// NewGlossaryTermStore creates the glossary store. Terms list alphabetically.
func NewGlossaryTermStore(db *sql.DB) *GlossaryTermStore {
	return &GlossaryTermStore{
		db:      db,
		name:    "glossary_terms",
		columns: "id, term, definition, created_at",
		orderBy: "term, id",
		scan: func(s scanner) (*models.GlossaryTerm, error) {
			var g models.GlossaryTerm
			if err := s.Scan(&g.ID, &g.Term, &g.Definition, &g.CreatedAt); err != nil {
				return nil, err
			}
			return &g, nil
		},
	}
}

// NewStockStore creates the watchlist store. Updates refresh updated_at.
func NewStockStore(db *sql.DB) *StockStore {
	return &StockStore{
		db:      db,
		name:    "stocks",
		columns: "id, symbol, name, price, change, change_percent, logo, updated_at",
		orderBy: "symbol, id",
		touch:   "updated_at",
		scan: func(s scanner) (*models.Stock, error) {
			var st models.Stock
			err := s.Scan(&st.ID, &st.Symbol, &st.Name, &st.Price, &st.Change,
				&st.ChangePercent, &st.Logo, &st.UpdatedAt)
			if err != nil {
				return nil, err
			}
			return &st, nil
		},
	}
}
