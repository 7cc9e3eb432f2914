// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"otusite/internal/cache"
	"otusite/internal/models"
)

// Resource serves the admin CRUD endpoints of one content collection and
// drops its cached public responses after every write.
type Resource[T any, F models.Fields] struct {
	label     string
	repo      Collection[T, F]
	cache     *cache.ResponseCache
	cacheKeys []string
}

// NewResource creates the admin handlers for a collection. label names one
// record in error messages; cacheKeys are the public responses built from it.
func NewResource[T any, F models.Fields](label string, repo Collection[T, F], rc *cache.ResponseCache, cacheKeys ...string) *Resource[T, F] {
	return &Resource[T, F]{
		label:     label,
		repo:      repo,
		cache:     rc,
		cacheKeys: cacheKeys,
	}
}

// Routes mounts list, create, get, update and delete.
func (res *Resource[T, F]) Routes(r chi.Router) {
	r.Get("/", res.List)
	r.Post("/", res.Create)
	r.Get("/{id}", res.Get)
	r.Put("/{id}", res.Update)
	r.Delete("/{id}", res.Delete)
}

// List returns every record, unredacted.
func (res *Resource[T, F]) List(w http.ResponseWriter, r *http.Request) {
	items, err := res.repo.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, res.label)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get returns one record.
func (res *Resource[T, F]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	item, err := res.repo.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, res.label)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create validates the payload and stores a new record.
func (res *Resource[T, F]) Create(w http.ResponseWriter, r *http.Request) {
	var fields F
	if err := decodeJSON(w, r, &fields); err != nil {
		writeDecodeError(w, err)
		return
	}

	item, err := res.repo.Create(r.Context(), fields)
	if err != nil {
		writeStoreError(w, r, err, res.label)
		return
	}

	res.cache.Invalidate(r.Context(), res.cacheKeys...)
	slog.Info("content created", "type", res.label)
	writeJSON(w, http.StatusOK, item)
}

// Update applies a partial update.
func (res *Resource[T, F]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var fields F
	if err := decodeJSON(w, r, &fields); err != nil {
		writeDecodeError(w, err)
		return
	}

	item, err := res.repo.Update(r.Context(), id, fields)
	if err != nil {
		writeStoreError(w, r, err, res.label)
		return
	}

	res.cache.Invalidate(r.Context(), res.cacheKeys...)
	slog.Info("content updated", "type", res.label, "id", id)
	writeJSON(w, http.StatusOK, item)
}

// Delete removes a record; 404 when nothing was deleted.
func (res *Resource[T, F]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	deleted, err := res.repo.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, res.label)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, res.label+" not found")
		return
	}

	res.cache.Invalidate(r.Context(), res.cacheKeys...)
	slog.Info("content deleted", "type", res.label, "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
