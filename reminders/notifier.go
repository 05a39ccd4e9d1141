/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/metrics"
)

// Subject is the title of every reminder notice.
const Subject = "⏰ Health Reminder – MediMind AI"

// Notifier delivers a due reminder over one channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, r db.Reminder) error
}

// Body renders the text of a reminder notice.
func Body(r db.Reminder) string {
	var b strings.Builder

	b.WriteString("Hello")
	if r.Username != "" {
		b.WriteString(" " + r.Username)
	}

	fmt.Fprintf(&b, ",\n\nThis is your health reminder.\n\nType: %s\nName: %s\nTime: NOW\n\nPlease take the required action.\n\n– MediMind AI\n",
		r.Category, r.Name)

	return b.String()
}

// MultiNotifier tries every channel. Delivery succeeds when at least one
// channel delivered, and channels returning ErrNoRecipient are skipped.
type MultiNotifier struct {
	Notifiers []Notifier
	Metrics   *metrics.Metrics
}

// Name implements Notifier.
func (m *MultiNotifier) Name() string {
	names := make([]string, 0, len(m.Notifiers))
	for _, n := range m.Notifiers {
		names = append(names, n.Name())
	}

	return strings.Join(names, "+")
}

// Notify implements Notifier.
func (m *MultiNotifier) Notify(ctx context.Context, r db.Reminder) error {
	var (
		delivered bool
		errs      []error
	)

	for _, n := range m.Notifiers {
		err := n.Notify(ctx, r)
		if errors.Is(err, ErrNoRecipient) {
			logger.Debug("Skipping reminder channel", "channel", n.Name(), "reminder_id", r.ID)
			continue
		}

		m.Metrics.ObserveReminder(n.Name(), err)

		if err != nil {
			logger.Warn("Reminder channel failed", "channel", n.Name(), "reminder_id", r.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))

			continue
		}

		delivered = true
	}

	if delivered {
		return nil
	}

	if len(errs) == 0 {
		return ErrNoChannel
	}

	return errors.Join(errs...)
}
