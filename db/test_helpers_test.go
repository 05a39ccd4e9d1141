// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"

	"github.com/humaidq/medimind/labs"
)

func testContext() context.Context {
	return context.Background()
}

func mustCreateUser(t *testing.T, username string) *User {
	t.Helper()

	user, err := CreateUser(testContext(), CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

func mustScan(t *testing.T, text string) []labs.Interpretation {
	t.Helper()

	scanner, err := labs.NewScanner(labs.DefaultRegistry())
	if err != nil {
		t.Fatalf("failed to build scanner: %v", err)
	}

	results, err := scanner.Scan(text)
	if err != nil {
		t.Fatalf("failed to scan text: %v", err)
	}

	return results
}
