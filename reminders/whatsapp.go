/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reminders

import (
	"context"

	"github.com/humaidq/medimind/db"
)

// TextSender sends a plain text message to a phone number.
type TextSender interface {
	SendText(ctx context.Context, phone, text string) error
}

// WhatsAppNotifier sends reminders to the owner's phone over WhatsApp.
type WhatsAppNotifier struct {
	Sender TextSender
}

// Name implements Notifier.
func (n *WhatsAppNotifier) Name() string { return "whatsapp" }

// Notify implements Notifier.
func (n *WhatsAppNotifier) Notify(ctx context.Context, r db.Reminder) error {
	if n.Sender == nil || r.Phone == nil || *r.Phone == "" {
		return ErrNoRecipient
	}

	return n.Sender.SendText(ctx, *r.Phone, "*"+Subject+"*\n\n"+Body(r))
}
