/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/whatsapp"
)

// sessionDestroyer is implemented by session stores that can sign a user
// out everywhere.
type sessionDestroyer interface {
	DestroyUserSessions(ctx context.Context, userID, keepID string) (int, error)
}

// LoginForm renders the login page
func LoginForm(t template.Template, data template.Data) {
	data["HeaderOnly"] = true
	t.HTML(http.StatusOK, "login")
}

// Login checks the submitted credentials and starts a session.
func Login(c flamego.Context, s session.Session) {
	username := strings.TrimSpace(c.Request().FormValue("username"))
	password := c.Request().FormValue("password")

	if username == "" || password == "" {
		SetErrorFlash(s, "Username and password are required")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	user, err := db.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			logAccessDenied(c, s, "invalid_credentials", http.StatusSeeOther, "/login", "username", username)
			SetErrorFlash(s, "Invalid username or password")
		} else {
			logger.Error("Error authenticating user", "username", username, "error", err)
			SetErrorFlash(s, "Failed to sign in")
		}

		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Error("Error regenerating session ID", "error", err)
	}

	setSessionUser(s, user)
	logger.Info("User signed in", "user_id", user.ID, "username", user.Username)

	c.Redirect("/", http.StatusSeeOther)
}

// RegisterForm renders the sign-up page
func RegisterForm(t template.Template, data template.Data) {
	data["HeaderOnly"] = true
	data["MinPasswordLength"] = db.MinPasswordLength
	t.HTML(http.StatusOK, "register")
}

// Register creates an account and signs the new user in.
func Register(c flamego.Context, s session.Session) {
	input := db.CreateUserInput{
		Username: strings.TrimSpace(c.Request().FormValue("username")),
		Email:    strings.TrimSpace(c.Request().FormValue("email")),
		Phone:    strings.TrimSpace(c.Request().FormValue("phone")),
		Password: c.Request().FormValue("password"),
	}

	if input.Password != c.Request().FormValue("confirm_password") {
		SetErrorFlash(s, "Passwords do not match")
		c.Redirect("/register", http.StatusSeeOther)

		return
	}

	if input.Phone != "" && !whatsapp.ValidPhone(input.Phone) {
		SetErrorFlash(s, "Phone number must include the country code")
		c.Redirect("/register", http.StatusSeeOther)

		return
	}

	user, err := db.CreateUser(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrUserExists):
			SetErrorFlash(s, "That username is already taken")
		case errors.Is(err, db.ErrPasswordTooShort):
			SetErrorFlash(s, "Password is too short")
		case errors.Is(err, db.ErrInvalidUser):
			SetErrorFlash(s, "Username and email are required")
		case errors.Is(err, db.ErrInvalidEmail):
			SetErrorFlash(s, "Email address is not valid")
		default:
			logger.Error("Error creating user", "username", input.Username, "error", err)
			SetErrorFlash(s, "Failed to create account")
		}

		c.Redirect("/register", http.StatusSeeOther)

		return
	}

	setSessionUser(s, user)
	logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	SetSuccessFlash(s, "Welcome to MediMind, "+user.Username)

	c.Redirect("/", http.StatusSeeOther)
}

// Logout ends the session. With everywhere=1 it also removes the user's
// other sessions from the store.
func Logout(c flamego.Context, s session.Session, store session.Store) {
	if c.Request().FormValue("everywhere") == "1" {
		userID, ok := getSessionUserID(s)
		destroyer, canDestroy := store.(sessionDestroyer)

		if ok && canDestroy {
			removed, err := destroyer.DestroyUserSessions(c.Request().Context(), userID, s.ID())
			if err != nil {
				logger.Error("Error removing other sessions", "user_id", userID, "error", err)
			} else {
				logger.Info("Removed other sessions", "user_id", userID, "count", removed)
			}
		}
	}

	clearSessionUser(s)
	c.Redirect("/login", http.StatusSeeOther)
}

// RequireAuth is a middleware that checks if user is authenticated
func RequireAuth(s session.Session, c flamego.Context) {
	authenticated, ok := s.Get(sessionAuthenticated).(bool)
	if !ok || !authenticated {
		logAccessDenied(c, s, "unauthenticated", http.StatusSeeOther, "/login")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	c.Next()
}

// RequireAdmin blocks access for non-admin users.
func RequireAdmin(s session.Session, c flamego.Context) {
	isAdmin, err := resolveSessionIsAdmin(c.Request().Context(), s)
	if err != nil || !isAdmin {
		if err != nil {
			logAccessDenied(c, s, "not_admin", http.StatusSeeOther, "/whatsapp", "error", err)
		} else {
			logAccessDenied(c, s, "not_admin", http.StatusSeeOther, "/whatsapp")
		}

		SetErrorFlash(s, "Access restricted")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	c.Next()
}

// RedirectIfAuthenticated sends signed-in users away from the login and
// sign-up pages.
func RedirectIfAuthenticated(s session.Session, c flamego.Context) {
	if authenticated, _ := s.Get(sessionAuthenticated).(bool); authenticated {
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	c.Next()
}
