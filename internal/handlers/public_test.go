// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"otusite/internal/gate"
	"otusite/internal/models"
	"otusite/internal/store"
)

func ptr[T any](v T) *T { return &v }

// publicRouter mounts the public handlers on their API paths.
func publicRouter(p *Public) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/stats", p.Stats)
	r.Get("/api/testimonials", p.Testimonials)
	r.Get("/api/videos", p.Videos)
	r.Post("/api/videos/unlock", p.UnlockVideos)
	r.Get("/api/blog", p.Blog)
	r.Get("/api/blog/{id}", p.BlogPost)
	r.Get("/api/modules", p.Modules)
	r.Get("/api/glossary", p.Glossary)
	r.Get("/api/watchlist", p.Watchlist)
	r.Post("/api/track", p.Track)
	r.Post("/api/track/{sessionId}", p.TrackUpdate)
	return r
}

// ---------- lists ----------

func TestPublicListsEmpty(t *testing.T) {
	env := newTestEnv(t)
	h := publicRouter(env.Public)

	for _, path := range []string{"/api/testimonials", "/api/videos", "/api/blog", "/api/modules", "/api/glossary", "/api/watchlist"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rr.Code)
			}
			if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
				t.Errorf("body: got %q, want []", body)
			}
		})
	}
}

func TestPublicListDegradesOnStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.Modules.Err = errors.New("database is down")

	rr := serve(publicRouter(env.Public), httptest.NewRequest(http.MethodGet, "/api/modules", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Errorf("body: got %q, want []", body)
	}
}

func TestPublicStats(t *testing.T) {
	t.Run("returns the singleton", func(t *testing.T) {
		env := newTestEnv(t)
		rr := serve(publicRouter(env.Public), httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		got := decode[models.Stats](t, rr)
		if got.MemberCount != 1547 || got.WinRate != 76 {
			t.Errorf("stats: got %+v", got)
		}
	})

	t.Run("degrades to defaults", func(t *testing.T) {
		env := newTestEnv(t)
		env.Stats.Err = errors.New("database is down")
		rr := serve(publicRouter(env.Public), httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if got := decode[models.Stats](t, rr); got.SuccessRate != 89 {
			t.Errorf("stats: got %+v, want defaults", got)
		}
	})
}

// ---------- videos ----------

func seedVideos(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	_, err := env.Videos.Create(ctx, models.VideoLessonFields{
		Title: ptr("Intro"), Description: ptr("Basics"), Duration: ptr("10:00"),
		Category: ptr("Beginner"), YoutubeID: ptr("free123"),
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	_, err = env.Videos.Create(ctx, models.VideoLessonFields{
		Title: ptr("Spreads"), Description: ptr("Advanced"), Duration: ptr("25:00"),
		Category: ptr("Advanced"), VideoURL: ptr("https://cdn.example/spreads.mp4"),
		YoutubeID: ptr("paid456"), Locked: ptr(true),
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
}

func TestPublicVideosRedactsLocked(t *testing.T) {
	env := newTestEnv(t)
	seedVideos(t, env)

	rr := serve(publicRouter(env.Public), httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	videos := decode[[]models.VideoLesson](t, rr)
	if len(videos) != 2 {
		t.Fatalf("videos: got %d, want 2", len(videos))
	}
	if videos[0].YoutubeID == nil || *videos[0].YoutubeID != "free123" {
		t.Error("unlocked video should keep its youtube id")
	}
	if videos[1].VideoURL != nil || videos[1].YoutubeID != nil {
		t.Errorf("locked video leaked playback refs: %+v", videos[1])
	}
	if !videos[1].Locked {
		t.Error("locked flag should be visible")
	}
}

func TestPublicVideosUnlock(t *testing.T) {
	env := newTestEnv(t)
	seedVideos(t, env)
	h := publicRouter(env.Public)

	rr := serve(h, jsonRequest(t, http.MethodPost, "/api/videos/unlock", map[string]string{"password": "wrong"}))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: got %d, want 401", rr.Code)
	}

	rr = serve(h, jsonRequest(t, http.MethodPost, "/api/videos/unlock", map[string]string{"password": "members-only"}))
	if rr.Code != http.StatusOK {
		t.Fatalf("unlock: got %d, want 200", rr.Code)
	}
	body := decode[map[string]string](t, rr)
	if body["token"] == "" || body["expiresAt"] == "" {
		t.Fatalf("unlock body: got %v", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	req.Header.Set(gate.HeaderName, body["token"])
	videos := decode[[]models.VideoLesson](t, serve(h, req))
	if videos[1].YoutubeID == nil || *videos[1].YoutubeID != "paid456" {
		t.Errorf("unlocked request should see locked video refs: %+v", videos[1])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	req.Header.Set(gate.HeaderName, body["token"]+"x")
	videos = decode[[]models.VideoLesson](t, serve(h, req))
	if videos[1].YoutubeID != nil {
		t.Error("tampered token must not unlock")
	}
}

func TestPublicVideosUnlockDisabled(t *testing.T) {
	env := newTestEnv(t)
	p := NewPublic(env.content(), env.Stats, env.Visitors, gate.New(testSecret, ""), nil)

	rr := serve(publicRouter(p), jsonRequest(t, http.MethodPost, "/api/videos/unlock", map[string]string{"password": "anything"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

// ---------- blog ----------

func TestPublicBlogPost(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Blog.Create(context.Background(), models.BlogPostFields{
		Title: ptr("Covered calls"), Excerpt: ptr("Income"), Author: ptr("Otu"),
		Date: ptr("2024-05-01"), Category: ptr("Strategy"), ReadTime: ptr("5 min"),
		Content: ptr("## Setup\n\nSell a **call**.\n\n<script>alert(1)</script>"),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	h := publicRouter(env.Public)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/blog/1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := decode[map[string]any](t, rr)
	html, _ := body["contentHtml"].(string)
	if !strings.Contains(html, "<strong>call</strong>") {
		t.Errorf("contentHtml should render markdown, got %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("contentHtml must be sanitized, got %q", html)
	}
	if body["title"] != "Covered calls" {
		t.Errorf("post fields should be inlined, got %v", body["title"])
	}

	if rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/blog/2", nil)); rr.Code != http.StatusNotFound {
		t.Errorf("missing post: got %d, want 404", rr.Code)
	}
	if rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/blog/x", nil)); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want 400", rr.Code)
	}
}

// ---------- tracking ----------

func TestPublicTrack(t *testing.T) {
	env := newTestEnv(t)
	h := publicRouter(env.Public)

	req := jsonRequest(t, http.MethodPost, "/api/track", map[string]string{
		"sessionId": "abc", "landingPage": "/", "referrer": "https://www.tiktok.com/",
	})
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone) musical_ly_28.0 BytedanceWebview")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	rr := serve(h, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	v := decode[models.Visitor](t, rr)
	if !v.IsTiktok || v.IPAddress != "203.0.113.9" || v.PageViews != 1 {
		t.Errorf("visitor: got %+v", v)
	}

	rr = serve(h, jsonRequest(t, http.MethodPost, "/api/track", map[string]string{"sessionId": "abc", "landingPage": "/blog"}))
	if rr.Code != http.StatusOK {
		t.Errorf("repeat track: got %d, want 200", rr.Code)
	}
	if got := decode[models.Visitor](t, rr); got.LandingPage != "/" {
		t.Errorf("repeat track should return the original record, got %+v", got)
	}

	rr = serve(h, jsonRequest(t, http.MethodPost, "/api/track/abc", map[string]any{
		"totalDuration": 42, "pageViews": 3, "convertedToTelegram": true,
	}))
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %d, want 200", rr.Code)
	}
	if got := decode[models.Visitor](t, rr); got.TotalDuration != 42 || !got.ConvertedToTelegram {
		t.Errorf("updated visitor: got %+v", got)
	}
}

func TestPublicTrackErrors(t *testing.T) {
	env := newTestEnv(t)
	h := publicRouter(env.Public)

	t.Run("generates a session id", func(t *testing.T) {
		rr := serve(h, jsonRequest(t, http.MethodPost, "/api/track", map[string]string{"landingPage": "/"}))
		if rr.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want 201", rr.Code)
		}
		if v := decode[models.Visitor](t, rr); v.SessionID == "" {
			t.Error("session id should be generated")
		}
	})

	t.Run("landing page required", func(t *testing.T) {
		rr := serve(h, jsonRequest(t, http.MethodPost, "/api/track", map[string]string{"sessionId": "x"}))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rr := serve(h, jsonRequest(t, http.MethodPost, "/api/track/nope", map[string]any{"pageViews": 2}))
		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})

	t.Run("negative duration", func(t *testing.T) {
		serve(h, jsonRequest(t, http.MethodPost, "/api/track", map[string]string{"sessionId": "neg", "landingPage": "/"}))
		rr := serve(h, jsonRequest(t, http.MethodPost, "/api/track/neg", map[string]any{"totalDuration": -1}))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})
}

// ---------- integration ----------

func TestPublicWithPostgresAndCache(t *testing.T) {
	db := testDB(t)
	rc, _ := testResponseCache(t)
	ctx := context.Background()

	glossary := store.NewGlossaryTermStore(db)
	db.ExecContext(ctx, "DELETE FROM glossary_terms")
	t.Cleanup(func() { db.ExecContext(context.Background(), "DELETE FROM glossary_terms") })

	if _, err := glossary.Create(ctx, models.GlossaryTermFields{Term: ptr("Theta"), Definition: ptr("Time decay")}); err != nil {
		t.Fatalf("create term: %v", err)
	}

	env := newTestEnv(t)
	content := env.content()
	content.Glossary = glossary
	p := NewPublic(content, store.NewStatsStore(db), env.Visitors, env.Gate, rc)
	h := publicRouter(p)

	first := serve(h, httptest.NewRequest(http.MethodGet, "/api/glossary", nil))
	if terms := decode[[]models.GlossaryTerm](t, first); len(terms) != 1 || terms[0].Term != "Theta" {
		t.Fatalf("glossary: got %+v", terms)
	}
	if _, ok := rc.Get(ctx, KeyGlossary); !ok {
		t.Error("list should be cached after first read")
	}

	// A cached response is served even after the row changes underneath.
	db.ExecContext(ctx, "DELETE FROM glossary_terms")
	second := serve(h, httptest.NewRequest(http.MethodGet, "/api/glossary", nil))
	if strings.TrimSpace(second.Body.String()) != strings.TrimSpace(first.Body.String()) {
		t.Errorf("cached body: got %q, want %q", second.Body.String(), first.Body.String())
	}
}
