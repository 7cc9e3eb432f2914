// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"testing"

	"otusite/internal/auth"
)

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed must be repeatable. We don't clear the database first because
	// other test packages may be running against the same database.
	opts := SeedOptions{AdminUsername: "seed-test-admin", AdminPassword: "first-password", SampleContent: true}
	t.Cleanup(func() { db.Exec("DELETE FROM admin_users WHERE username = $1", opts.AdminUsername) })

	if err := Seed(ctx, db, opts); err != nil {
		t.Fatalf("first Seed: %v", err)
	}

	opts.AdminPassword = "second-password"
	if err := Seed(ctx, db, opts); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var hash string
	if err := db.QueryRow("SELECT password_hash FROM admin_users WHERE username = $1", opts.AdminUsername).Scan(&hash); err != nil {
		t.Fatalf("lookup admin: %v", err)
	}
	if !auth.VerifyPassword("first-password", hash) {
		t.Error("reseeding must not overwrite an existing admin password")
	}

	var statsRows int
	if err := db.QueryRow("SELECT COUNT(*) FROM stats").Scan(&statsRows); err != nil {
		t.Fatalf("count stats: %v", err)
	}
	if statsRows != 1 {
		t.Errorf("stats rows: got %d, want 1", statsRows)
	}

	var glossary int
	if err := db.QueryRow("SELECT COUNT(*) FROM glossary_terms").Scan(&glossary); err != nil {
		t.Fatalf("count glossary: %v", err)
	}
	if glossary == 0 {
		t.Error("expected glossary to be seeded")
	}
}
