/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// CreateUserInput defines data for registering a user.
type CreateUserInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

// CreateUser registers a user with a bcrypt password hash.
func CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidUser
	}

	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	if len(input.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var phone *string
	if p := strings.TrimSpace(input.Phone); p != "" {
		phone = &p
	}

	var user User

	// The first account administers the server.
	query := `
		INSERT INTO users (username, email, phone, password_hash, is_admin)
		SELECT $1, $2, $3, $4, NOT EXISTS (SELECT 1 FROM users)
		RETURNING id, username, email, phone, password_hash, is_admin, created_at, updated_at
	`

	err = pool.QueryRow(ctx, query, username, email, phone, string(hash)).Scan(
		&user.ID, &user.Username, &user.Email, &user.Phone,
		&user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUserExists
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("Registered user", "user_id", user.ID, "username", user.Username, "admin", user.IsAdmin)

	return &user, nil
}

// ValidEmail reports whether email is a bare address that an SMTP relay
// will accept as a recipient.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	return addr.Address == email
}

// SetUserAdmin grants or revokes the admin flag of a user.
func SetUserAdmin(ctx context.Context, username string, admin bool) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx,
		`UPDATE users SET is_admin = $2, updated_at = now() WHERE lower(username) = lower($1)`,
		strings.TrimSpace(username), admin)
	if err != nil {
		return fmt.Errorf("failed to update admin flag: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	logger.Info("Updated admin flag", "username", username, "admin", admin)

	return nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords both return ErrInvalidCredentials.
func Authenticate(ctx context.Context, username, password string) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	user, err := getUser(ctx, `WHERE lower(username) = lower($1)`, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		// Keep timing close to the known-user path.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID returns a user or ErrNotFound.
func GetUserByID(ctx context.Context, id string) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	return getUser(ctx, `WHERE id = $1`, uid)
}

// UpdateUserPhone sets or clears the WhatsApp number of a user.
func UpdateUserPhone(ctx context.Context, id string, phone string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	var value *string
	if p := strings.TrimSpace(phone); p != "" {
		value = &p
	}

	uid, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `UPDATE users SET phone = $2, updated_at = now() WHERE id = $1`, uid, value)
	if err != nil {
		return fmt.Errorf("failed to update phone: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// parseID maps malformed IDs to ErrNotFound so handlers treat them as
// missing records.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}

	return uid, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("medimind-placeholder"), bcrypt.DefaultCost)

func getUser(ctx context.Context, where string, arg any) (*User, error) {
	var user User

	err := pool.QueryRow(ctx, `
		SELECT id, username, email, phone, password_hash, is_admin, created_at, updated_at
		FROM users `+where, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.Phone,
		&user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
