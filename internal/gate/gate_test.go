// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gate

import (
	"testing"
	"time"
)

const secret = "test-secret-that-is-at-least-32-bytes!"

func TestUnlock(t *testing.T) {
	g := New(secret, "0123")

	t.Run("wrong password", func(t *testing.T) {
		if _, _, ok := g.Unlock("9999"); ok {
			t.Error("wrong password should not unlock")
		}
	})

	t.Run("correct password", func(t *testing.T) {
		token, expires, ok := g.Unlock("0123")
		if !ok || token == "" {
			t.Fatal("correct password should unlock")
		}
		if d := time.Until(expires); d < DefaultTTL-time.Minute || d > DefaultTTL {
			t.Errorf("expiry %v not about %v away", expires, DefaultTTL)
		}
		if !g.Valid(token) {
			t.Error("freshly issued token should be valid")
		}
	})
}

func TestValid(t *testing.T) {
	g := New(secret, "0123")
	token, _, _ := g.Unlock("0123")

	t.Run("expired", func(t *testing.T) {
		later := New(secret, "0123")
		later.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Hour) }
		if later.Valid(token) {
			t.Error("token should expire after the TTL")
		}
	})

	t.Run("other secret", func(t *testing.T) {
		if New("another-secret-another-secret-xx", "0123").Valid(token) {
			t.Error("token signed with another secret must be rejected")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		for _, tok := range []string{"", "abc", "unlock:123.sig", token + "x"} {
			if g.Valid(tok) {
				t.Errorf("Valid(%q) should be false", tok)
			}
		}
	})
}

func TestDisabled(t *testing.T) {
	g := New(secret, "")
	if g.Enabled() {
		t.Error("gate without password should be disabled")
	}
	if _, _, ok := g.Unlock(""); ok {
		t.Error("disabled gate must never unlock")
	}

	var nilGate *Gate
	if nilGate.Enabled() || nilGate.Valid("x") {
		t.Error("nil gate should be disabled")
	}
}
