// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/url"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/humaidq/medimind/db"
)

func TestCreateReminderValidation(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	future := time.Now().In(loc).Add(48 * time.Hour).Format("2006-01-02T15:04")
	past := time.Now().In(loc).Add(-48 * time.Hour).Format("2006-01-02T15:04")

	tests := []struct {
		name      string
		form      url.Values
		wantFlash string
	}{
		{
			name:      "unknown category",
			form:      url.Values{"category": {"Dentist"}, "name": {"Checkup"}, "scheduled_at": {future}},
			wantFlash: "Choose Medicine or Vaccination",
		},
		{
			name:      "missing name",
			form:      url.Values{"category": {"Medicine"}, "name": {" "}, "scheduled_at": {future}},
			wantFlash: "Reminder name is required",
		},
		{
			name:      "bad time",
			form:      url.Values{"category": {"Medicine"}, "name": {"Metformin"}, "scheduled_at": {"tomorrow"}},
			wantFlash: "Invalid reminder time",
		},
		{
			name:      "past time",
			form:      url.Values{"category": {"Vaccination"}, "name": {"Tetanus booster"}, "scheduled_at": {past}},
			wantFlash: "Reminder time must be in the future",
		},
		{
			name:      "database unavailable",
			form:      url.Values{"category": {"Medicine"}, "name": {"Metformin"}, "scheduled_at": {future}},
			wantFlash: "Failed to save reminder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := signedInSession()
			f := newTestApp(s)
			f.Post("/reminders", func(c flamego.Context, sess session.Session) {
				CreateReminder(c, sess, loc)
			})

			rec := performFormPOST(t, f, "/reminders", tt.form)
			assertRedirect(t, rec, "/reminders")
			assertFlash(t, s, FlashError, tt.wantFlash)
		})
	}
}

func TestUpcomingReminders(t *testing.T) {
	t.Parallel()

	list := []db.Reminder{
		{Name: "a", Status: db.ReminderReminded},
		{Name: "b", Status: db.ReminderPending},
		{Name: "c", Status: db.ReminderFailed},
		{Name: "d", Status: db.ReminderSending},
		{Name: "e", Status: db.ReminderPending},
	}

	got := upcomingReminders(list, 2)
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "d" {
		t.Fatalf("expected [b d], got %+v", got)
	}

	if all := upcomingReminders(list, 10); len(all) != 3 {
		t.Fatalf("expected 3 upcoming reminders, got %d", len(all))
	}
}
