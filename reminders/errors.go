/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reminders

import "errors"

var (
	// ErrInvalidTime is returned for reminder times that cannot be parsed.
	ErrInvalidTime = errors.New("invalid reminder time")
	// ErrNoRecipient is returned by a notifier that has no address for the
	// reminder's owner. MultiNotifier treats it as a skipped channel.
	ErrNoRecipient = errors.New("no recipient for channel")
	// ErrNoChannel is returned when every channel was skipped.
	ErrNoChannel = errors.New("no delivery channel available")

	errSMTPNotConfigured = errors.New("SMTP host and sender are required")
)
