// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"otusite/internal/analytics"
	"otusite/internal/cache"
	"otusite/internal/middleware"
	"otusite/internal/models"
)

// Admin groups the admin handlers that are not plain collection CRUD.
type Admin struct {
	stats    StatsRepo
	visitors VisitorRepo
	cache    *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(stats StatsRepo, visitors VisitorRepo, rc *cache.ResponseCache) *Admin {
	return &Admin{
		stats:    stats,
		visitors: visitors,
		cache:    rc,
	}
}

// UpdateStats applies a partial update to the stats singleton.
func (a *Admin) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var fields models.StatsFields
	if err := decodeJSON(w, r, &fields); err != nil {
		writeDecodeError(w, err)
		return
	}

	stats, err := a.stats.Update(r.Context(), fields)
	if err != nil {
		writeStoreError(w, r, err, "Stats")
		return
	}

	a.cache.Invalidate(r.Context(), KeyStats)
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		slog.Info("stats updated", "by", sess.Username)
	}
	writeJSON(w, http.StatusOK, stats)
}

// Analytics returns the visitor summary and the most recent visitors.
func (a *Admin) Analytics(w http.ResponseWriter, r *http.Request) {
	visitors, err := a.visitors.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "Visitors")
		return
	}
	if visitors == nil {
		visitors = []models.Visitor{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":          analytics.Summarize(visitors),
		"recentVisitors": analytics.Recent(visitors),
	})
}
