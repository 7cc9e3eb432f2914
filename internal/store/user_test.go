// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store_test

import (
	"otusite/internal/store"

	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAdminStoreEnsureAndFind(t *testing.T) {
	db := testDB(t)
	s := store.NewAdminStore(db)
	ctx := context.Background()

	username := "test-admin-" + uuid.NewString()[:8]
	t.Cleanup(func() { db.Exec("DELETE FROM admin_users WHERE username = $1", username) })

	created, err := s.Ensure(ctx, username, "hash-one")
	if err != nil || !created {
		t.Fatalf("first Ensure: created=%v err=%v", created, err)
	}

	created, err = s.Ensure(ctx, username, "hash-two")
	if err != nil || created {
		t.Fatalf("second Ensure: created=%v err=%v, want false", created, err)
	}

	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if u.PasswordHash != "hash-one" {
		t.Errorf("existing password must be kept, got %q", u.PasswordHash)
	}
}

func TestAdminStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := store.NewAdminStore(db)

	_, err := s.FindByUsername(context.Background(), "nobody-"+uuid.NewString())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
