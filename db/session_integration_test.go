// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"net/http"
	"testing"
	"time"

	"github.com/flamego/session"
)

func TestPostgresSessionStoreLifecycle(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	initer := PostgresSessionIniter()
	store, err := initer(ctx, PostgresSessionConfig{Lifetime: time.Hour})
	if err != nil {
		t.Fatalf("PostgresSessionIniter failed: %v", err)
	}
	pgStore := store.(*PostgresSessionStore)

	noopWriter := func(_ http.ResponseWriter, _ *http.Request, _ string) {}

	sess1 := session.NewBaseSession("sess1", session.GobEncoder, noopWriter)
	sess1.Set("user_id", "user-1")
	sess1.Set("username", "alice")

	if err := pgStore.Save(ctx, sess1); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !pgStore.Exist(ctx, "sess1") {
		t.Fatalf("expected session to exist")
	}

	readSess, err := pgStore.Read(ctx, "sess1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if readSess.Get("user_id") != "user-1" {
		t.Fatalf("expected user_id to match")
	}

	if err := pgStore.Touch(ctx, "sess1"); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	for id, owner := range map[string]string{"sess2": "user-1", "sess3": "user-1", "sess4": "user-2"} {
		sess := session.NewBaseSession(id, session.GobEncoder, noopWriter)
		sess.Set("user_id", owner)

		if err := pgStore.Save(ctx, sess); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	deleted, err := pgStore.DestroyUserSessions(ctx, "user-1", "sess1")
	if err != nil {
		t.Fatalf("DestroyUserSessions failed: %v", err)
	}

	if deleted != 2 {
		t.Fatalf("expected 2 sessions deleted, got %d", deleted)
	}

	if !pgStore.Exist(ctx, "sess1") || !pgStore.Exist(ctx, "sess4") {
		t.Fatalf("expected current and other user's sessions to survive")
	}

	missing, err := pgStore.Read(ctx, "unknown")
	if err != nil {
		t.Fatalf("Read of unknown session failed: %v", err)
	}

	if missing.ID() != "unknown" || missing.Get("user_id") != nil {
		t.Fatalf("expected fresh session for unknown id")
	}

	if err := pgStore.Destroy(ctx, "sess1"); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if pgStore.Exist(ctx, "sess1") {
		t.Fatalf("expected session to be removed")
	}

	if err := pgStore.GC(ctx); err != nil {
		t.Fatalf("GC failed: %v", err)
	}
}
