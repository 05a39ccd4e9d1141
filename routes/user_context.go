/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medimind/db"
)

// Session keys.
const (
	sessionAuthenticated = "authenticated"
	sessionUserID        = "user_id"
	sessionUsername      = "username"
	sessionIsAdmin       = "user_is_admin"
)

// UserContextInjector loads session user metadata into templates.
func UserContextInjector() flamego.Handler {
	return func(c flamego.Context, s session.Session, data template.Data) {
		authenticated, _ := s.Get(sessionAuthenticated).(bool)
		data["IsAuthenticated"] = authenticated
		if !authenticated {
			return
		}

		if username, ok := s.Get(sessionUsername).(string); ok {
			data["Username"] = username
		}

		isAdmin, err := resolveSessionIsAdmin(c.Request().Context(), s)
		if err != nil {
			logger.Error("Failed to resolve user admin state", "error", err)
			return
		}
		data["IsAdmin"] = isAdmin
	}
}

func getSessionUserID(s session.Session) (string, bool) {
	if val := s.Get(sessionUserID); val != nil {
		if userID, ok := val.(string); ok && userID != "" {
			return userID, true
		}
	}

	return "", false
}

func setSessionUser(s session.Session, user *db.User) {
	s.Set(sessionAuthenticated, true)
	s.Set(sessionUserID, user.ID.String())
	s.Set(sessionUsername, user.Username)
	s.Set(sessionIsAdmin, user.IsAdmin)
}

func clearSessionUser(s session.Session) {
	s.Delete(sessionAuthenticated)
	s.Delete(sessionUserID)
	s.Delete(sessionUsername)
	s.Delete(sessionIsAdmin)
}

func resolveSessionUser(ctx context.Context, s session.Session) (*db.User, error) {
	userID, ok := getSessionUserID(s)
	if !ok {
		return nil, errSessionUserMissing
	}

	return db.GetUserByID(ctx, userID)
}

// resolveSessionIsAdmin reads the admin flag cached at sign-in, loading it
// from the database for sessions created before it was cached.
func resolveSessionIsAdmin(ctx context.Context, s session.Session) (bool, error) {
	if isAdmin, ok := s.Get(sessionIsAdmin).(bool); ok {
		return isAdmin, nil
	}

	user, err := resolveSessionUser(ctx, s)
	if err != nil {
		return false, err
	}

	s.Set(sessionIsAdmin, user.IsAdmin)

	return user.IsAdmin, nil
}
