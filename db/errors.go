/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLEnvVarNotSet          = errors.New("DATABASE_URL environment variable is not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in DATABASE_URL")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")

	ErrInvalidSessionConfig = errors.New("invalid PostgresSessionConfig")

	ErrNotFound           = errors.New("record not found")
	ErrUserExists         = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUser        = errors.New("username, email and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("email address is not valid")

	ErrInvalidReminder = errors.New("reminder name and time are required")
	ErrInvalidCategory = errors.New("unknown reminder category")
	ErrEmptyReport     = errors.New("report has no results")
)
