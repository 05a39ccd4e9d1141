// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package reminders

import (
	"errors"
	"testing"
	"time"
)

func TestParseLocalTime(t *testing.T) {
	t.Parallel()

	kolkata, err := LoadLocation("")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	want := time.Date(2025, time.June, 1, 3, 0, 0, 0, time.UTC)

	for _, value := range []string{"2025-06-01T08:30", "2025-06-01T08:30:00", " 2025-06-01 08:30 "} {
		got, err := ParseLocalTime(value, kolkata)
		if err != nil {
			t.Fatalf("ParseLocalTime(%q) failed: %v", value, err)
		}

		if !got.Equal(want) || got.Location() != time.UTC {
			t.Fatalf("ParseLocalTime(%q): expected %v, got %v", value, want, got)
		}
	}
}

func TestParseLocalTimeNilLocation(t *testing.T) {
	t.Parallel()

	got, err := ParseLocalTime("2025-06-01T08:30", nil)
	if err != nil {
		t.Fatalf("ParseLocalTime failed: %v", err)
	}

	if !got.Equal(time.Date(2025, time.June, 1, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected UTC interpretation, got %v", got)
	}
}

func TestParseLocalTimeInvalid(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "tomorrow", "2025-13-01T08:30", "01/06/2025 08:30"} {
		if _, err := ParseLocalTime(value, time.UTC); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("ParseLocalTime(%q): expected ErrInvalidTime, got %v", value, err)
		}
	}
}

func TestLoadLocationUnknown(t *testing.T) {
	t.Parallel()

	if _, err := LoadLocation("Mars/Olympus_Mons"); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
