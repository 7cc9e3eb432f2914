// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// site API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"otusite/internal/cache"
	"otusite/internal/gate"
	"otusite/internal/handlers"
	"otusite/internal/middleware"
	"otusite/internal/storage"
)

// Sessions is the session store as used by the router: loaded on every
// API request, created and destroyed by the auth handlers.
type Sessions interface {
	middleware.SessionGetter
	handlers.SessionManager
}

// Deps holds everything the routes are built from.
type Deps struct {
	Sessions Sessions
	Content  handlers.Content
	Stats    handlers.StatsRepo
	Visitors handlers.VisitorRepo
	Admins   handlers.AdminFinder
	Uploads  storage.Backend
	Gate     *gate.Gate
	Cache    *cache.ResponseCache

	// UploadDir is served under /uploads/ when set (disk backend).
	UploadDir string

	// EnforceOrigin turns on the Origin/Referer check for admin writes.
	EnforceOrigin bool

	// Health reports backing service health; nil means always healthy.
	Health func(ctx context.Context) error
}

// Rate limits per client IP.
const (
	loginRate   = 5.0 / 60 // five attempts per minute
	loginBurst  = 5
	unlockRate  = 5.0 / 60
	unlockBurst = 5
	trackRate   = 2
	trackBurst  = 20
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler(d.Health))

	if d.UploadDir != "" {
		r.Get("/uploads/*", uploadsHandler(d.UploadDir))
	}

	public := handlers.NewPublic(d.Content, d.Stats, d.Visitors, d.Gate, d.Cache)
	auth := handlers.NewAuth(d.Sessions, d.Admins)
	admin := handlers.NewAdmin(d.Stats, d.Visitors, d.Cache)
	uploads := handlers.NewUploads(d.Uploads)

	loginLimiter := middleware.NewRateLimiter(loginRate, loginBurst)
	unlockLimiter := middleware.NewRateLimiter(unlockRate, unlockBurst)
	trackLimiter := middleware.NewRateLimiter(trackRate, trackBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Sessions))

		// Public reads.
		r.Get("/stats", public.Stats)
		r.Get("/testimonials", public.Testimonials)
		r.Get("/modules", public.Modules)
		r.Get("/glossary", public.Glossary)
		r.Get("/watchlist", public.Watchlist)
		r.Get("/videos", public.Videos)
		r.Get("/blog", public.Blog)
		r.Get("/blog/{id}", public.BlogPost)

		r.With(unlockLimiter.Middleware).Post("/videos/unlock", public.UnlockVideos)

		r.Group(func(r chi.Router) {
			r.Use(trackLimiter.Middleware)
			r.Post("/track", public.Track)
			r.Post("/track/{sessionId}", public.TrackUpdate)
		})

		r.Route("/admin", func(r chi.Router) {
			// Accessible without a session.
			r.With(loginLimiter.Middleware, middleware.CheckOrigin(d.EnforceOrigin)).
				Post("/login", auth.Login)
			r.Get("/check", auth.Check)

			// Admin session required. The session check runs first so an
			// anonymous write is answered with 401, not 403.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Use(middleware.CheckOrigin(d.EnforceOrigin))
				r.Use(middleware.RequireCSRFToken)

				r.Post("/logout", auth.Logout)
				r.Post("/upload", uploads.Upload)
				r.Put("/stats", admin.UpdateStats)
				r.Get("/analytics", admin.Analytics)

				r.Route("/testimonials", handlers.NewResource("Testimonial", d.Content.Testimonials, d.Cache, handlers.KeyTestimonials).Routes)
				r.Route("/videos", handlers.NewResource("Video", d.Content.Videos, d.Cache, handlers.KeyVideos, handlers.KeyVideosUnlocked).Routes)
				r.Route("/blog", handlers.NewResource("Blog post", d.Content.Blog, d.Cache, handlers.KeyBlog).Routes)
				r.Route("/modules", handlers.NewResource("Module", d.Content.Modules, d.Cache, handlers.KeyModules).Routes)
				r.Route("/glossary", handlers.NewResource("Glossary term", d.Content.Glossary, d.Cache, handlers.KeyGlossary).Routes)
				r.Route("/watchlist", handlers.NewResource("Stock", d.Content.Watchlist, d.Cache, handlers.KeyWatchlist).Routes)
			})
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		})
	})

	return r
}

// healthHandler returns a JSON health check response. When check is set
// and fails, it answers 503.
func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// uploadsHandler serves stored uploads without directory listings.
func uploadsHandler(dir string) http.HandlerFunc {
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/uploads/")
		if name == "" || strings.HasSuffix(name, "/") || strings.HasPrefix(name, ".") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
