// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
)

type fakeSessionStore struct {
	session.Store

	userID string
	keepID string
}

func (s *fakeSessionStore) DestroyUserSessions(_ context.Context, userID, keepID string) (int, error) {
	s.userID = userID
	s.keepID = keepID

	return 2, nil
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *testSession
		wantOK  bool
	}{
		{name: "anonymous", session: newTestSession()},
		{name: "signed in", session: signedInSession(), wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newTestApp(tt.session)
			f.Get("/", RequireAuth, func(c flamego.Context) {
				c.ResponseWriter().WriteHeader(http.StatusNoContent)
			})

			rec := performGET(t, f, "/")
			if tt.wantOK {
				if rec.Code != http.StatusNoContent {
					t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
				}

				return
			}

			assertRedirect(t, rec, "/login")
		})
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	t.Parallel()

	f := newTestApp(signedInSession())
	f.Get("/login", RedirectIfAuthenticated, func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	assertRedirect(t, performGET(t, f, "/login"), "/")
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		form      url.Values
		wantFlash string
	}{
		{
			name:      "missing password",
			form:      url.Values{"username": {"asha"}},
			wantFlash: "Username and password are required",
		},
		{
			name:      "blank username",
			form:      url.Values{"username": {"  "}, "password": {"secret"}},
			wantFlash: "Username and password are required",
		},
		{
			name:      "database unavailable",
			form:      url.Values{"username": {"asha"}, "password": {"correct horse battery"}},
			wantFlash: "Failed to sign in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			f := newTestApp(s)
			f.Post("/login", Login)

			rec := performFormPOST(t, f, "/login", tt.form)
			assertRedirect(t, rec, "/login")
			assertFlash(t, s, FlashError, tt.wantFlash)

			if _, ok := s.Get(sessionAuthenticated).(bool); ok {
				t.Fatalf("expected session to stay anonymous")
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	base := func() url.Values {
		return url.Values{
			"username":         {"asha"},
			"email":            {"asha@example.com"},
			"password":         {"correct horse battery"},
			"confirm_password": {"correct horse battery"},
		}
	}

	mismatch := base()
	mismatch.Set("confirm_password", "something else")

	badPhone := base()
	badPhone.Set("phone", "12-34")

	badEmail := base()
	badEmail.Set("email", "asha@example.com\r\nBcc: x@example.com")

	tests := []struct {
		name      string
		form      url.Values
		wantFlash string
	}{
		{name: "password mismatch", form: mismatch, wantFlash: "Passwords do not match"},
		{name: "invalid phone", form: badPhone, wantFlash: "Phone number must include the country code"},
		{name: "invalid email", form: badEmail, wantFlash: "Email address is not valid"},
		{name: "database unavailable", form: base(), wantFlash: "Failed to create account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			f := newTestApp(s)
			f.Post("/register", Register)

			rec := performFormPOST(t, f, "/register", tt.form)
			assertRedirect(t, rec, "/register")
			assertFlash(t, s, FlashError, tt.wantFlash)
		})
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("this session", func(t *testing.T) {
		t.Parallel()

		s := signedInSession()
		store := &fakeSessionStore{}

		f := newTestApp(s)
		f.Post("/logout", func(c flamego.Context, sess session.Session) {
			Logout(c, sess, store)
		})

		assertRedirect(t, performFormPOST(t, f, "/logout", nil), "/login")

		if s.Get(sessionAuthenticated) != nil || s.Get(sessionUserID) != nil {
			t.Fatalf("expected session user to be cleared, got %#v", s.data)
		}

		if store.userID != "" {
			t.Fatalf("did not expect other sessions to be removed")
		}
	})

	t.Run("everywhere", func(t *testing.T) {
		t.Parallel()

		s := signedInSession()
		userID, _ := getSessionUserID(s)
		store := &fakeSessionStore{}

		f := newTestApp(s)
		f.Post("/logout", func(c flamego.Context, sess session.Session) {
			Logout(c, sess, store)
		})

		assertRedirect(t, performFormPOST(t, f, "/logout", url.Values{"everywhere": {"1"}}), "/login")

		if store.userID != userID || store.keepID != s.ID() {
			t.Fatalf("expected other sessions of %s removed, got user %q keep %q", userID, store.userID, store.keepID)
		}
	})
}
