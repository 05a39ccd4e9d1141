// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/humaidq/medimind/labs"
)

func TestLabReportLifecycle(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	alice := mustCreateUser(t, "alice")
	mallory := mustCreateUser(t, "mallory")

	if _, err := CreateLabReport(ctx, CreateLabReportInput{UserID: alice.ID.String()}); !errors.Is(err, ErrEmptyReport) {
		t.Fatalf("expected ErrEmptyReport, got %v", err)
	}

	results := mustScan(t, "HAEMOGLOBIN 12.5 g/dL PLATELET COUNT 250000 CALCIUM 11.1")
	if len(results) != 3 {
		t.Fatalf("expected 3 scanned results, got %d", len(results))
	}

	reportID, err := CreateLabReport(ctx, CreateLabReportInput{
		UserID:     alice.ID.String(),
		Title:      "  ",
		SourceType: "pdf",
		Results:    results,
	})
	if err != nil {
		t.Fatalf("CreateLabReport failed: %v", err)
	}

	report, err := GetLabReport(ctx, alice.ID.String(), reportID)
	if err != nil {
		t.Fatalf("GetLabReport failed: %v", err)
	}

	if report.Title != "Lab report" || report.SourceType != "pdf" {
		t.Fatalf("unexpected report header %+v", report)
	}

	if len(report.Results) != len(results) {
		t.Fatalf("expected %d results, got %d", len(results), len(report.Results))
	}

	for i, r := range report.Results {
		if r != results[i] {
			t.Fatalf("result %d differs: want %+v, got %+v", i, results[i], r)
		}
	}

	if _, err := GetLabReport(ctx, mallory.ID.String(), reportID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other users to get ErrNotFound, got %v", err)
	}

	summaries, err := ListLabReports(ctx, alice.ID.String())
	if err != nil {
		t.Fatalf("ListLabReports failed: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 report, got %d", len(summaries))
	}

	s := summaries[0]
	if s.ResultCount != 3 || s.LowCount != 1 || s.HighCount != 1 || s.Abnormal() != 2 {
		t.Fatalf("unexpected summary counts %+v", s)
	}

	if err := DeleteLabReport(ctx, mallory.ID.String(), reportID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected delete by other user to fail, got %v", err)
	}

	if err := DeleteLabReport(ctx, alice.ID.String(), reportID); err != nil {
		t.Fatalf("DeleteLabReport failed: %v", err)
	}

	if _, err := GetLabReport(ctx, alice.ID.String(), reportID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted report to be gone, got %v", err)
	}
}

func TestTestHistory(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	user := mustCreateUser(t, "carol")

	for _, text := range []string{"HAEMOGLOBIN 12.1", "HAEMOGLOBIN 13.4 CALCIUM 9", "HB 17.5"} {
		if _, err := CreateLabReport(ctx, CreateLabReportInput{
			UserID:  user.ID.String(),
			Title:   text,
			Results: mustScan(t, text),
		}); err != nil {
			t.Fatalf("CreateLabReport failed: %v", err)
		}
	}

	history, err := GetTestHistory(ctx, user.ID.String(), "Hemoglobin")
	if err != nil {
		t.Fatalf("GetTestHistory failed: %v", err)
	}

	if len(history) != 3 {
		t.Fatalf("expected 3 points, got %d", len(history))
	}

	wantStatus := []labs.Status{labs.StatusLow, labs.StatusNormal, labs.StatusHigh}
	for i, p := range history {
		if p.Status != wantStatus[i] {
			t.Fatalf("point %d: expected %s, got %s", i, wantStatus[i], p.Status)
		}

		if i > 0 && p.CreatedAt.Before(history[i-1].CreatedAt) {
			t.Fatalf("expected history oldest first")
		}
	}

	counts, err := GetTestCounts(ctx, user.ID.String())
	if err != nil {
		t.Fatalf("GetTestCounts failed: %v", err)
	}

	if len(counts) != 2 || counts[0].Name != "Hemoglobin" || counts[0].Count != 3 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}
