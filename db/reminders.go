/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReminderClaimTimeout is how long a reminder may stay in Sending before
// another worker may claim it again.
const ReminderClaimTimeout = 10 * time.Minute

// CreateReminderInput defines a reminder to schedule.
type CreateReminderInput struct {
	UserID      string
	Category    ReminderCategory
	Name        string
	ScheduledAt time.Time
}

const reminderColumns = `r.id, r.user_id, r.category, r.name, r.scheduled_at, r.status, r.attempts, r.last_error, r.reminded_at, r.created_at`

// CreateReminder schedules a reminder and returns its ID.
func CreateReminder(ctx context.Context, input CreateReminderInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.ScheduledAt.IsZero() {
		return "", ErrInvalidReminder
	}

	if !input.Category.Valid() {
		return "", ErrInvalidCategory
	}

	userID, err := parseID(input.UserID)
	if err != nil {
		return "", err
	}

	var id uuid.UUID

	err = pool.QueryRow(ctx, `
		INSERT INTO reminders (user_id, category, name, scheduled_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, string(input.Category), name, input.ScheduledAt.UTC()).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create reminder: %w", err)
	}

	logger.Info("Scheduled reminder", "reminder_id", id, "category", input.Category, "at", input.ScheduledAt.UTC())

	return id.String(), nil
}

// ListReminders returns the reminders of a user by scheduled time.
func ListReminders(ctx context.Context, userID string) ([]Reminder, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders r
		WHERE r.user_id = $1
		ORDER BY r.scheduled_at ASC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder

	for rows.Next() {
		var r Reminder
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.Category, &r.Name, &r.ScheduledAt, &r.Status,
			&r.Attempts, &r.LastError, &r.RemindedAt, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		reminders = append(reminders, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}

// DeleteReminder removes a reminder owned by userID.
func DeleteReminder(ctx context.Context, userID, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return err
	}

	rid, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, rid, uid)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ClaimDueReminders moves up to limit due reminders into Sending and
// returns them with their recipient details. Rows locked by another
// worker are skipped, and reminders stuck in Sending longer than
// ReminderClaimTimeout are claimed again.
func ClaimDueReminders(ctx context.Context, now time.Time, limit int) ([]Reminder, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = 50
	}

	rows, err := pool.Query(ctx, `
		UPDATE reminders r
		SET status = 'Sending', claimed_at = $1, attempts = r.attempts + 1
		FROM users u
		WHERE u.id = r.user_id
		AND r.id IN (
			SELECT id FROM reminders
			WHERE scheduled_at <= $1
			AND (status = 'Pending' OR (status = 'Sending' AND claimed_at < $2))
			ORDER BY scheduled_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+reminderColumns+`, u.username, u.email, u.phone
	`, now.UTC(), now.UTC().Add(-ReminderClaimTimeout), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim reminders: %w", err)
	}
	defer rows.Close()

	var claimed []Reminder

	for rows.Next() {
		var r Reminder
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.Category, &r.Name, &r.ScheduledAt, &r.Status,
			&r.Attempts, &r.LastError, &r.RemindedAt, &r.CreatedAt,
			&r.Username, &r.Email, &r.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		claimed = append(claimed, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return claimed, nil
}

// MarkReminderStatus records the outcome of a delivery attempt.
func MarkReminderStatus(ctx context.Context, id uuid.UUID, status ReminderStatus, cause error) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	var lastError *string
	if cause != nil {
		msg := cause.Error()
		lastError = &msg
	}

	tag, err := pool.Exec(ctx, `
		UPDATE reminders
		SET status = $2,
			last_error = $3,
			claimed_at = NULL,
			reminded_at = CASE WHEN $2 = 'Reminded' THEN now() ELSE reminded_at END
		WHERE id = $1
	`, id, string(status), lastError)
	if err != nil {
		return fmt.Errorf("failed to update reminder status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ReminderStore exposes the reminder queue to the delivery worker.
type ReminderStore struct{}

// ClaimDue implements the worker's store.
func (ReminderStore) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error) {
	return ClaimDueReminders(ctx, now, limit)
}

// Mark implements the worker's store.
func (ReminderStore) Mark(ctx context.Context, id uuid.UUID, status ReminderStatus, cause error) error {
	return MarkReminderStatus(ctx, id, status, cause)
}
