/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/reminders"
)

// ListReminders shows the user's reminders and the scheduling form.
func ListReminders(c flamego.Context, s session.Session, t template.Template, data template.Data, loc *time.Location) {
	loc = locationOrUTC(loc)

	data["IsReminders"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{
		{Name: "Reminders", IsCurrent: true},
	}
	data["Categories"] = db.ReminderCategories
	data["Location"] = loc
	data["MinTime"] = time.Now().In(loc).Format("2006-01-02T15:04")

	ctx := c.Request().Context()
	userID, _ := getSessionUserID(s)

	list, err := db.ListReminders(ctx, userID)
	if err != nil {
		logger.Error("Error fetching reminders", "user_id", userID, "error", err)
		data["Error"] = "Failed to load reminders"
	} else {
		data["Reminders"] = list
	}

	if user, err := db.GetUserByID(ctx, userID); err == nil {
		data["User"] = user
	}

	t.HTML(http.StatusOK, "reminders")
}

// CreateReminder schedules a reminder entered in the configured time zone.
func CreateReminder(c flamego.Context, s session.Session, loc *time.Location) {
	userID, _ := getSessionUserID(s)

	category := db.ReminderCategory(c.Request().FormValue("category"))
	if !category.Valid() {
		SetErrorFlash(s, "Choose Medicine or Vaccination")
		c.Redirect("/reminders", http.StatusSeeOther)

		return
	}

	name := strings.TrimSpace(c.Request().FormValue("name"))
	if name == "" {
		SetErrorFlash(s, "Reminder name is required")
		c.Redirect("/reminders", http.StatusSeeOther)

		return
	}

	at, err := reminders.ParseLocalTime(c.Request().FormValue("scheduled_at"), locationOrUTC(loc))
	if err != nil {
		SetErrorFlash(s, "Invalid reminder time")
		c.Redirect("/reminders", http.StatusSeeOther)

		return
	}

	if at.Before(time.Now().Add(-time.Minute)) {
		SetErrorFlash(s, "Reminder time must be in the future")
		c.Redirect("/reminders", http.StatusSeeOther)

		return
	}

	id, err := db.CreateReminder(c.Request().Context(), db.CreateReminderInput{
		UserID:      userID,
		Category:    category,
		Name:        name,
		ScheduledAt: at,
	})
	if err != nil {
		logger.Error("Error creating reminder", "user_id", userID, "error", err)
		SetErrorFlash(s, "Failed to save reminder")
		c.Redirect("/reminders", http.StatusSeeOther)

		return
	}

	logger.Info("Created reminder", "reminder_id", id, "user_id", userID, "category", category)
	SetSuccessFlash(s, "Reminder saved")
	c.Redirect("/reminders", http.StatusSeeOther)
}

// DeleteReminder removes one of the user's reminders.
func DeleteReminder(c flamego.Context, s session.Session) {
	userID, _ := getSessionUserID(s)
	reminderID := c.Param("id")

	if err := db.DeleteReminder(c.Request().Context(), userID, reminderID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			SetErrorFlash(s, "Reminder not found")
		} else {
			logger.Error("Error deleting reminder", "reminder_id", reminderID, "error", err)
			SetErrorFlash(s, "Failed to delete reminder")
		}

		c.Redirect("/reminders", http.StatusSeeOther)

		return
	}

	SetSuccessFlash(s, "Reminder deleted")
	c.Redirect("/reminders", http.StatusSeeOther)
}
