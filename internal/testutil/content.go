// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package testutil

import (
	"time"

	"otusite/internal/models"
)

func set[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}

// setNullable mirrors the store: an empty string clears the column.
func setNullable(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}

// NewTestimonials returns an empty testimonial collection.
func NewTestimonials() *Collection[models.Testimonial, models.TestimonialFields] {
	return NewCollection(func(t *models.Testimonial, id int64, f models.TestimonialFields) {
		if t.ID == 0 {
			t.ID, t.CreatedAt, t.Rating, t.Date = id, time.Now(), 5, "2024-01-01"
		}
		set(&t.Name, f.Name)
		set(&t.Testimonial, f.Testimonial)
		set(&t.Profit, f.Profit)
		set(&t.Rating, f.Rating)
		set(&t.Date, f.Date)
		setNullable(&t.Photo, f.Photo)
		setNullable(&t.ProfitImage, f.ProfitImage)
	})
}

// NewVideoLessons returns an empty video collection.
func NewVideoLessons() *Collection[models.VideoLesson, models.VideoLessonFields] {
	return NewCollection(func(v *models.VideoLesson, id int64, f models.VideoLessonFields) {
		if v.ID == 0 {
			v.ID, v.CreatedAt = id, time.Now()
		}
		set(&v.Title, f.Title)
		set(&v.Description, f.Description)
		set(&v.Duration, f.Duration)
		set(&v.Category, f.Category)
		setNullable(&v.Thumbnail, f.Thumbnail)
		setNullable(&v.VideoURL, f.VideoURL)
		setNullable(&v.YoutubeID, f.YoutubeID)
		set(&v.Locked, f.Locked)
	})
}

// NewBlogPosts returns an empty blog collection.
func NewBlogPosts() *Collection[models.BlogPost, models.BlogPostFields] {
	return NewCollection(func(p *models.BlogPost, id int64, f models.BlogPostFields) {
		if p.ID == 0 {
			p.ID, p.CreatedAt = id, time.Now()
		}
		set(&p.Title, f.Title)
		set(&p.Excerpt, f.Excerpt)
		set(&p.Content, f.Content)
		set(&p.Author, f.Author)
		set(&p.Date, f.Date)
		set(&p.Category, f.Category)
		set(&p.ReadTime, f.ReadTime)
	})
}

// NewModules returns an empty module collection.
func NewModules() *Collection[models.Module, models.ModuleFields] {
	return NewCollection(func(m *models.Module, id int64, f models.ModuleFields) {
		if m.ID == 0 {
			m.ID, m.CreatedAt = id, time.Now()
		}
		set(&m.Title, f.Title)
		set(&m.Content, f.Content)
	})
}

// NewGlossaryTerms returns an empty glossary collection.
func NewGlossaryTerms() *Collection[models.GlossaryTerm, models.GlossaryTermFields] {
	return NewCollection(func(g *models.GlossaryTerm, id int64, f models.GlossaryTermFields) {
		if g.ID == 0 {
			g.ID, g.CreatedAt = id, time.Now()
		}
		set(&g.Term, f.Term)
		set(&g.Definition, f.Definition)
	})
}

// NewStocks returns an empty watchlist.
func NewStocks() *Collection[models.Stock, models.StockFields] {
	return NewCollection(func(s *models.Stock, id int64, f models.StockFields) {
		s.ID, s.UpdatedAt = id, time.Now()
		set(&s.Symbol, f.Symbol)
		set(&s.Name, f.Name)
		set(&s.Price, f.Price)
		set(&s.Change, f.Change)
		set(&s.ChangePercent, f.ChangePercent)
		setNullable(&s.Logo, f.Logo)
	})
}
