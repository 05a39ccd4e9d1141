/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/medimind/db"
)

// Defaults for Worker fields left zero.
const (
	DefaultInterval    = 30 * time.Second
	DefaultBatchSize   = 50
	DefaultMaxAttempts = 3
)

// Store is the reminder queue the worker drains.
type Store interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]db.Reminder, error)
	Mark(ctx context.Context, id uuid.UUID, status db.ReminderStatus, cause error) error
}

// Worker delivers due reminders on a fixed interval. Several workers may
// share one store, since claims are exclusive.
type Worker struct {
	Store       Store
	Notifier    Notifier
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	Now         func() time.Time
}

// Run delivers reminders until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger.Info("Reminder worker started", "interval", interval, "channels", w.Notifier.Name())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Reminder pass failed", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce claims the reminders due now, delivers them, and returns how
// many were delivered. A failed reminder returns to Pending until it has
// used MaxAttempts, then becomes Failed.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	batch := w.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	maxAttempts := w.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	due, err := w.Store.ClaimDue(ctx, now(), batch)
	if err != nil {
		return 0, fmt.Errorf("failed to claim reminders: %w", err)
	}

	delivered := 0

	var markErrs []error

	for _, r := range due {
		if ctx.Err() != nil {
			// Unprocessed claims go back to the queue after the claim timeout.
			return delivered, ctx.Err()
		}

		notifyErr := w.Notifier.Notify(ctx, r)

		status := db.ReminderReminded
		switch {
		case notifyErr == nil:
			delivered++
			logger.Info("Reminder delivered", "reminder_id", r.ID, "category", r.Category, "name", r.Name)
		case r.Attempts >= maxAttempts:
			status = db.ReminderFailed
			logger.Error("Reminder failed permanently", "reminder_id", r.ID, "attempts", r.Attempts, "error", notifyErr)
		default:
			status = db.ReminderPending
			logger.Warn("Reminder delivery failed, will retry", "reminder_id", r.ID, "attempts", r.Attempts, "error", notifyErr)
		}

		if err := w.Store.Mark(ctx, r.ID, status, notifyErr); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				logger.Warn("Reminder deleted during delivery", "reminder_id", r.ID)
				continue
			}

			// The claim expires after db.ReminderClaimTimeout and is retried.
			logger.Error("Failed to mark reminder", "reminder_id", r.ID, "status", status, "error", err)

			markErrs = append(markErrs, fmt.Errorf("failed to mark reminder %s: %w", r.ID, err))
		}
	}

	return delivered, errors.Join(markErrs...)
}
