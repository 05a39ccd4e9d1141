/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medimind/db"
)

const (
	homeRecentReports    = 5
	homeUpcomingReminder = 5
)

// BreadcrumbItem represents a single breadcrumb navigation item
type BreadcrumbItem struct {
	Name      string
	URL       string
	IsCurrent bool
}

// Home renders the dashboard: latest reports, upcoming reminders and the
// tests with the most history.
func Home(c flamego.Context, s session.Session, t template.Template, data template.Data, loc *time.Location) {
	ctx := c.Request().Context()
	userID, _ := getSessionUserID(s)

	data["IsHome"] = true
	data["Location"] = locationOrUTC(loc)

	reports, err := db.ListLabReports(ctx, userID)
	if err != nil {
		logger.Error("Error fetching lab reports", "user_id", userID, "error", err)
		data["Error"] = "Failed to load your dashboard"
	} else {
		data["ReportCount"] = len(reports)
		if len(reports) > homeRecentReports {
			reports = reports[:homeRecentReports]
		}
		data["Reports"] = reports
	}

	list, err := db.ListReminders(ctx, userID)
	if err != nil {
		logger.Error("Error fetching reminders", "user_id", userID, "error", err)
	} else {
		data["Upcoming"] = upcomingReminders(list, homeUpcomingReminder)
	}

	counts, err := db.GetTestCounts(ctx, userID)
	if err != nil {
		logger.Error("Error counting lab results", "user_id", userID, "error", err)
	} else {
		data["TestCounts"] = counts
	}

	t.HTML(http.StatusOK, "home")
}

// upcomingReminders keeps at most limit reminders still waiting to be sent.
func upcomingReminders(list []db.Reminder, limit int) []db.Reminder {
	var upcoming []db.Reminder

	for _, r := range list {
		if r.Status != db.ReminderPending && r.Status != db.ReminderSending {
			continue
		}

		upcoming = append(upcoming, r)
		if len(upcoming) == limit {
			break
		}
	}

	return upcoming
}
