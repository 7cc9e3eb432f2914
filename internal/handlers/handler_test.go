// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure. Most tests run
// against the in-memory repositories of internal/testutil; the integration
// tests at the bottom are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"otusite/internal/cache"
	"otusite/internal/database"
	"otusite/internal/gate"
	"otusite/internal/middleware"
	"otusite/internal/models"
	"otusite/internal/session"
	"otusite/internal/testutil"
)

const testSecret = "test-secret-that-is-long-enough-for-hmac"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testEnv holds the fakes behind every handler group.
type testEnv struct {
	Testimonials *testutil.Collection[models.Testimonial, models.TestimonialFields]
	Videos       *testutil.Collection[models.VideoLesson, models.VideoLessonFields]
	Blog         *testutil.Collection[models.BlogPost, models.BlogPostFields]
	Modules      *testutil.Collection[models.Module, models.ModuleFields]
	Glossary     *testutil.Collection[models.GlossaryTerm, models.GlossaryTermFields]
	Watchlist    *testutil.Collection[models.Stock, models.StockFields]
	Stats        *testutil.Stats
	Visitors     *testutil.Visitors
	Admins       *testutil.Admins
	Sessions     *testutil.Sessions
	Gate         *gate.Gate

	Public *Public
	Admin  *Admin
	Auth   *Auth
}

// newTestEnv wires every handler group to fresh fakes. The gate password
// is "members-only".
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Testimonials: testutil.NewTestimonials(),
		Videos:       testutil.NewVideoLessons(),
		Blog:         testutil.NewBlogPosts(),
		Modules:      testutil.NewModules(),
		Glossary:     testutil.NewGlossaryTerms(),
		Watchlist:    testutil.NewStocks(),
		Stats:        testutil.NewStats(),
		Visitors:     testutil.NewVisitors(),
		Admins:       testutil.NewAdmins(),
		Sessions:     testutil.NewSessions(),
		Gate:         gate.New(testSecret, "members-only"),
	}
	if err := env.Admins.Add("admin", "admin123"); err != nil {
		t.Fatalf("add admin: %v", err)
	}

	env.Public = NewPublic(env.content(), env.Stats, env.Visitors, env.Gate, nil)
	env.Admin = NewAdmin(env.Stats, env.Visitors, nil)
	env.Auth = NewAuth(env.Sessions, env.Admins)
	return env
}

func (env *testEnv) content() Content {
	return Content{
		Testimonials: env.Testimonials,
		Videos:       env.Videos,
		Blog:         env.Blog,
		Modules:      env.Modules,
		Glossary:     env.Glossary,
		Watchlist:    env.Watchlist,
	}
}

// adminSession returns a logged-in admin session.
func adminSession() *session.Data {
	return &session.Data{AdminID: 1, Username: "admin", CSRFToken: "token"}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return middleware.WithSession(ctx, data)
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decode unmarshals a recorded response body.
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rr)["error"]
}

// ---------- integration infrastructure ----------

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "otusite")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "otusite_test")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testResponseCache returns a response cache on Valkey DB 15.
func testResponseCache(t *testing.T) (*cache.ResponseCache, *redis.Client) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	rc := cache.NewResponseCache(client, time.Minute)
	rc.InvalidateAll(ctx)
	t.Cleanup(func() {
		rc.InvalidateAll(ctx)
		client.Close()
	})
	return rc, client
}
