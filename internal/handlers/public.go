// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"otusite/internal/analytics"
	"otusite/internal/cache"
	"otusite/internal/gate"
	"otusite/internal/markdown"
	"otusite/internal/middleware"
	"otusite/internal/models"
)

// Response cache keys for the public reads.
const (
	KeyStats          = "stats"
	KeyTestimonials   = "testimonials"
	KeyVideos         = "videos"
	KeyVideosUnlocked = "videos:unlocked"
	KeyBlog           = "blog"
	KeyModules        = "modules"
	KeyGlossary       = "glossary"
	KeyWatchlist      = "watchlist"
)

// Public groups the unauthenticated API handlers. List responses are served
// from the Valkey response cache when possible; on a database failure they
// degrade to an empty list (or the default stats) instead of an error.
type Public struct {
	content  Content
	stats    StatsRepo
	visitors VisitorRepo
	gate     *gate.Gate
	cache    *cache.ResponseCache
}

// NewPublic creates a new Public handler group. rc and g may be nil.
func NewPublic(content Content, stats StatsRepo, visitors VisitorRepo, g *gate.Gate, rc *cache.ResponseCache) *Public {
	return &Public{
		content:  content,
		stats:    stats,
		visitors: visitors,
		gate:     g,
		cache:    rc,
	}
}

// Stats returns the headline numbers.
func (p *Public) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if cached, ok := p.cache.Get(ctx, KeyStats); ok {
		writeRawJSON(w, cached)
		return
	}

	stats, err := p.stats.Get(ctx)
	if err != nil {
		slog.Error("load stats failed", "error", err)
		def := models.DefaultStats()
		writeJSON(w, http.StatusOK, &def)
		return
	}
	p.store(ctx, KeyStats, stats)
	writeJSON(w, http.StatusOK, stats)
}

// Testimonials lists testimonials.
func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, p, KeyTestimonials, p.content.Testimonials.List)
}

// Modules lists course modules.
func (p *Public) Modules(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, p, KeyModules, p.content.Modules.List)
}

// Glossary lists glossary terms alphabetically.
func (p *Public) Glossary(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, p, KeyGlossary, p.content.Glossary.List)
}

// Watchlist lists the stock watchlist.
func (p *Public) Watchlist(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, p, KeyWatchlist, p.content.Watchlist.List)
}

// Blog lists blog posts.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, p, KeyBlog, p.content.Blog.List)
}

// Videos lists the video library. Locked lessons lose their playback
// references unless the request carries a valid unlock token.
func (p *Public) Videos(w http.ResponseWriter, r *http.Request) {
	unlocked := p.gate.Valid(r.Header.Get(gate.HeaderName))
	key := KeyVideos
	if unlocked {
		key = KeyVideosUnlocked
	}

	serveList(w, r, p, key, func(ctx context.Context) ([]models.VideoLesson, error) {
		items, err := p.content.Videos.List(ctx)
		if err != nil || unlocked {
			return items, err
		}
		for i := range items {
			if items[i].Locked {
				items[i] = items[i].Redacted()
			}
		}
		return items, nil
	})
}

// blogPostView is a blog post with its Markdown rendered to HTML.
type blogPostView struct {
	*models.BlogPost
	ContentHTML string `json:"contentHtml"`
}

// BlogPost returns a single post with rendered, sanitized HTML.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	post, err := p.content.Blog.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "Blog post")
		return
	}

	html, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render blog post failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, blogPostView{BlogPost: post, ContentHTML: html})
}

// UnlockVideos exchanges the members password for an unlock token.
func (p *Public) UnlockVideos(w http.ResponseWriter, r *http.Request) {
	if !p.gate.Enabled() {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}
	if body.Password == "" {
		writeError(w, http.StatusBadRequest, "Password required")
		return
	}

	token, expires, ok := p.gate.Unlock(body.Password)
	if !ok {
		slog.Warn("video unlock rejected", "ip", middleware.ClientIP(r))
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresAt": expires.Format(time.RFC3339),
	})
}

// trackRequest is the body of a new visitor report.
type trackRequest struct {
	SessionID   string `json:"sessionId"`
	LandingPage string `json:"landingPage"`
	Referrer    string `json:"referrer"`
}

// Track records a visitor session. IP, user agent and TikTok detection
// come from the request itself. Reporting a known session id returns the
// existing record with 200; a new one is created with 201.
func (p *Public) Track(w http.ResponseWriter, r *http.Request) {
	var body trackRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	sessionID := strings.TrimSpace(body.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ua := r.UserAgent()

	visitor, created, err := p.visitors.Track(r.Context(), models.NewVisitor{
		SessionID:   sessionID,
		IPAddress:   middleware.ClientIP(r),
		UserAgent:   ua,
		Referrer:    body.Referrer,
		LandingPage: body.LandingPage,
		IsTiktok:    analytics.IsTikTok(ua),
	})
	if err != nil {
		writeStoreError(w, r, err, "Visitor")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, visitor)
}

// TrackUpdate records activity for an existing visitor session.
func (p *Public) TrackUpdate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var upd models.VisitorUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeDecodeError(w, err)
		return
	}

	visitor, err := p.visitors.Update(r.Context(), sessionID, upd)
	if err != nil {
		writeStoreError(w, r, err, "Visitor")
		return
	}
	writeJSON(w, http.StatusOK, visitor)
}

// store caches an encoded response body.
func (p *Public) store(ctx context.Context, key string, v any) {
	if p.cache == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode cached response failed", "key", key, "error", err)
		return
	}
	p.cache.Set(ctx, key, body)
}

// serveList writes a cached list, or loads, caches and writes it. A load
// failure is logged and answered with an empty list.
func serveList[T any](w http.ResponseWriter, r *http.Request, p *Public, key string, list func(context.Context) ([]T, error)) {
	ctx := r.Context()
	if cached, ok := p.cache.Get(ctx, key); ok {
		writeRawJSON(w, cached)
		return
	}

	items, err := list(ctx)
	if err != nil {
		slog.Error("load list failed", "key", key, "error", err)
		writeJSON(w, http.StatusOK, []T{})
		return
	}
	p.store(ctx, key, items)
	writeJSON(w, http.StatusOK, items)
}
