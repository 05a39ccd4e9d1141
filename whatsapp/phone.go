/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import (
	"regexp"
	"strings"
)

// E.164 numbers carry at most 15 digits including the country code.
const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

var nonDigitRegex = regexp.MustCompile(`[^\d]`)

// NormalizePhone removes all non-digit characters, so "+91 98765-43210"
// becomes "919876543210".
func NormalizePhone(phone string) string {
	return nonDigitRegex.ReplaceAllString(phone, "")
}

// JIDToPhone extracts the phone number from a WhatsApp JID.
// JID format: 1234567890@s.whatsapp.net, or 1234567890:12@s.whatsapp.net
// for a linked device.
func JIDToPhone(jid string) string {
	user, _, _ := strings.Cut(jid, "@")
	user, _, _ = strings.Cut(user, ":")

	return user
}

// ValidPhone reports whether phone can be addressed on WhatsApp.
func ValidPhone(phone string) bool {
	_, err := PhoneToJID(phone)
	return err == nil
}
