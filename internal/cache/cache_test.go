// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, responseKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"), 15)
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	client.Close()
}

func TestConnectValkeyUnreachable(t *testing.T) {
	if _, err := ConnectValkey("127.0.0.1", "1", "", 0); err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}

// TestNilResponseCache verifies a nil cache is a silent no-op.
func TestNilResponseCache(t *testing.T) {
	var rc *ResponseCache
	ctx := context.Background()

	rc.Set(ctx, "testimonials", []byte(`[]`))
	if _, ok := rc.Get(ctx, "testimonials"); ok {
		t.Error("nil cache should always miss")
	}
	rc.Invalidate(ctx, "testimonials")
	rc.InvalidateAll(ctx)
}

func TestResponseCache(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "glossary"); ok {
		t.Fatal("expected miss on empty cache")
	}

	rc.Set(ctx, "glossary", []byte(`[{"id":1}]`))
	rc.Set(ctx, "stats", []byte(`{"id":1}`))

	body, ok := rc.Get(ctx, "glossary")
	if !ok || string(body) != `[{"id":1}]` {
		t.Fatalf("Get: got %q, %v", body, ok)
	}

	t.Run("ttl applied", func(t *testing.T) {
		ttl, err := client.TTL(ctx, responseKeyPrefix+"glossary").Result()
		if err != nil {
			t.Fatalf("TTL: %v", err)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Errorf("TTL: got %v, want (0, 1m]", ttl)
		}
	})

	t.Run("invalidate one key", func(t *testing.T) {
		rc.Invalidate(ctx, "glossary")
		if _, ok := rc.Get(ctx, "glossary"); ok {
			t.Error("glossary should be gone")
		}
		if _, ok := rc.Get(ctx, "stats"); !ok {
			t.Error("stats should survive")
		}
	})

	t.Run("invalidate all", func(t *testing.T) {
		rc.InvalidateAll(ctx)
		if _, ok := rc.Get(ctx, "stats"); ok {
			t.Error("stats should be gone")
		}
	})
}
