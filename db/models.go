/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/medimind/labs"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Phone        *string
	PasswordHash string
	// IsAdmin allows managing the WhatsApp sender device.
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LabReport is a scanned document and when it was uploaded.
type LabReport struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	SourceType string
	CreatedAt  time.Time
	Results    []labs.Interpretation
}

// LabReportSummary is a report row with its status counts.
type LabReportSummary struct {
	ID          uuid.UUID
	Title       string
	SourceType  string
	CreatedAt   time.Time
	ResultCount int
	LowCount    int
	HighCount   int
}

// Abnormal returns the number of results outside their range.
func (s LabReportSummary) Abnormal() int {
	return s.LowCount + s.HighCount
}

// TestHistoryPoint is one stored value of a test.
type TestHistoryPoint struct {
	ReportID  uuid.UUID
	Value     float64
	Unit      string
	Min       float64
	Max       float64
	Status    labs.Status
	CreatedAt time.Time
}

// TestCount is a test name and how many stored results it has.
type TestCount struct {
	Name  string
	Count int
}

// ReminderCategory is what the reminder is for.
type ReminderCategory string

const (
	ReminderMedicine    ReminderCategory = "Medicine"
	ReminderVaccination ReminderCategory = "Vaccination"
)

// ReminderCategories lists the categories in display order.
var ReminderCategories = []ReminderCategory{ReminderMedicine, ReminderVaccination}

// Valid reports whether c is a known category.
func (c ReminderCategory) Valid() bool {
	return c == ReminderMedicine || c == ReminderVaccination
}

// ReminderStatus tracks delivery of a reminder.
type ReminderStatus string

const (
	ReminderPending  ReminderStatus = "Pending"
	ReminderSending  ReminderStatus = "Sending"
	ReminderReminded ReminderStatus = "Reminded"
	ReminderFailed   ReminderStatus = "Failed"
)

// Reminder is a scheduled medicine or vaccination notice. ScheduledAt is UTC.
type Reminder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    ReminderCategory
	Name        string
	ScheduledAt time.Time
	Status      ReminderStatus
	Attempts    int
	LastError   *string
	RemindedAt  *time.Time
	CreatedAt   time.Time

	// Recipient details, filled in by ClaimDueReminders.
	Username string
	Email    string
	Phone    *string
}

// ScheduledIn formats the scheduled time in loc.
func (r Reminder) ScheduledIn(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	return r.ScheduledAt.In(loc).Format("2006-01-02 15:04")
}
