/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import "errors"

// ErrInvalidPhone is returned for numbers that cannot be a WhatsApp account.
var ErrInvalidPhone = errors.New("invalid phone number")

// ErrNotConnected is returned when sending without a linked device.
var ErrNotConnected = errors.New("whatsapp is not connected")

var (
	errNoExistingSessionToReconnect = errors.New("no existing session to reconnect")
	errNoDeviceStoreContainer       = errors.New("whatsapp SQL store container is unavailable")
)
