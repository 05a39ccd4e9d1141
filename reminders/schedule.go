/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package reminders schedules medicine and vaccination reminders and
// delivers them by email and WhatsApp when they fall due.
package reminders

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimezone is the zone reminder times are entered in when none is
// configured.
const DefaultTimezone = "Asia/Kolkata"

// Layouts accepted for local reminder times. The first is what an HTML
// datetime-local input submits.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseLocalTime parses a wall-clock time entered in loc and returns it
// in UTC.
func ParseLocalTime(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	value = strings.TrimSpace(value)

	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

// LoadLocation resolves a zone name, falling back to DefaultTimezone when
// name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	return loc, nil
}
