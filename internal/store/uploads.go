// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// UploadRefs answers whether content still points at an uploaded file.
type UploadRefs struct {
	db *sql.DB
}

// NewUploadRefs creates a new UploadRefs with the given database connection.
func NewUploadRefs(db *sql.DB) *UploadRefs {
	return &UploadRefs{db: db}
}

// IsReferenced reports whether any content row mentions the upload name,
// either as a media URL column or inside Markdown bodies.
func (s *UploadRefs) IsReferenced(ctx context.Context, name string) (bool, error) {
	pattern := "%" + name + "%"
	var found bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM testimonials WHERE photo LIKE $1 OR profit_image LIKE $1
			UNION ALL
			SELECT 1 FROM video_lessons WHERE thumbnail LIKE $1 OR video_url LIKE $1
			UNION ALL
			SELECT 1 FROM stocks WHERE logo LIKE $1
			UNION ALL
			SELECT 1 FROM blog_posts WHERE content LIKE $1
			UNION ALL
			SELECT 1 FROM modules WHERE content LIKE $1
		)
	`, pattern).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check upload reference %s: %w", name, err)
	}
	return found, nil
}
