/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/medimind/labs"
)

// CreateLabReportInput defines a scanned report to store.
type CreateLabReportInput struct {
	UserID     string
	Title      string
	SourceType string
	Results    []labs.Interpretation
}

// CreateLabReport stores a report and its interpretations in one
// transaction and returns the report ID.
func CreateLabReport(ctx context.Context, input CreateLabReportInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	if len(input.Results) == 0 {
		return "", ErrEmptyReport
	}

	userID, err := parseID(input.UserID)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Lab report"
	}

	sourceType := input.SourceType
	if sourceType == "" {
		sourceType = "text"
	}

	var reportID uuid.UUID

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO lab_reports (user_id, title, source_type)
			VALUES ($1, $2, $3)
			RETURNING id
		`, userID, title, sourceType).Scan(&reportID)
		if err != nil {
			return fmt.Errorf("failed to create lab report: %w", err)
		}

		batch := &pgx.Batch{}
		for i, r := range input.Results {
			batch.Queue(`
				INSERT INTO lab_report_results
					(report_id, position, test_name, simple_name, value, unit, min_value, max_value, status, explanation, symptom_text)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`, reportID, i, r.Name, r.SimpleName, r.Value, r.Unit, r.Min, r.Max, string(r.Status), r.Explanation, r.SymptomText)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to store lab results: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Stored lab report", "report_id", reportID, "results", len(input.Results))

	return reportID.String(), nil
}

// GetLabReport returns a report owned by userID with its results in
// registry order.
func GetLabReport(ctx context.Context, userID, id string) (*LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	rid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var report LabReport

	err = pool.QueryRow(ctx, `
		SELECT id, user_id, title, source_type, created_at
		FROM lab_reports
		WHERE id = $1 AND user_id = $2
	`, rid, uid).Scan(&report.ID, &report.UserID, &report.Title, &report.SourceType, &report.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT test_name, simple_name, value, unit, min_value, max_value, status, explanation, symptom_text
		FROM lab_report_results
		WHERE report_id = $1
		ORDER BY position ASC
	`, rid)
	if err != nil {
		return nil, fmt.Errorf("failed to query lab results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r labs.Interpretation

		var status string
		if err := rows.Scan(&r.Name, &r.SimpleName, &r.Value, &r.Unit, &r.Min, &r.Max, &status, &r.Explanation, &r.SymptomText); err != nil {
			return nil, fmt.Errorf("failed to scan lab result: %w", err)
		}

		r.Status = labs.Status(status)
		report.Results = append(report.Results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab results: %w", err)
	}

	return &report, nil
}

// ListLabReports returns the reports of a user, newest first.
func ListLabReports(ctx context.Context, userID string) ([]LabReportSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT r.id, r.title, r.source_type, r.created_at,
			COUNT(res.id),
			COUNT(res.id) FILTER (WHERE res.status = 'LOW'),
			COUNT(res.id) FILTER (WHERE res.status = 'HIGH')
		FROM lab_reports r
		LEFT JOIN lab_report_results res ON res.report_id = r.id
		WHERE r.user_id = $1
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab reports: %w", err)
	}
	defer rows.Close()

	var reports []LabReportSummary

	for rows.Next() {
		var s LabReportSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.SourceType, &s.CreatedAt, &s.ResultCount, &s.LowCount, &s.HighCount); err != nil {
			return nil, fmt.Errorf("failed to scan lab report: %w", err)
		}

		reports = append(reports, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab reports: %w", err)
	}

	return reports, nil
}

// DeleteLabReport removes a report owned by userID.
func DeleteLabReport(ctx context.Context, userID, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return err
	}

	rid, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM lab_reports WHERE id = $1 AND user_id = $2`, rid, uid)
	if err != nil {
		return fmt.Errorf("failed to delete lab report: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetTestHistory returns every stored value of testName for a user,
// oldest first.
func GetTestHistory(ctx context.Context, userID, testName string) ([]TestHistoryPoint, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT r.id, res.value, res.unit, res.min_value, res.max_value, res.status, r.created_at
		FROM lab_report_results res
		JOIN lab_reports r ON r.id = res.report_id
		WHERE r.user_id = $1 AND res.test_name = $2
		ORDER BY r.created_at ASC
	`, uid, testName)
	if err != nil {
		return nil, fmt.Errorf("failed to query test history: %w", err)
	}
	defer rows.Close()

	var points []TestHistoryPoint

	for rows.Next() {
		var p TestHistoryPoint

		var status string
		if err := rows.Scan(&p.ReportID, &p.Value, &p.Unit, &p.Min, &p.Max, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan test history: %w", err)
		}

		p.Status = labs.Status(status)
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating test history: %w", err)
	}

	return points, nil
}

// GetTestCounts returns the tests a user has results for, most frequent first.
func GetTestCounts(ctx context.Context, userID string) ([]TestCount, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT res.test_name, COUNT(*)
		FROM lab_report_results res
		JOIN lab_reports r ON r.id = res.report_id
		WHERE r.user_id = $1
		GROUP BY res.test_name
		ORDER BY COUNT(*) DESC, res.test_name ASC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to count tests: %w", err)
	}
	defer rows.Close()

	var counts []TestCount

	for rows.Next() {
		var c TestCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan test count: %w", err)
		}

		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating test counts: %w", err)
	}

	return counts, nil
}
