/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/doctext"
	"github.com/humaidq/medimind/labs"
	"github.com/humaidq/medimind/metrics"
)

const (
	labUploadMaxBytes = 10 << 20
	labTextMaxBytes   = 1 << 20
)

// labDocument is a submitted report before text extraction.
type labDocument struct {
	Title       string
	ContentType string
	Data        []byte
}

func labBreadcrumb(isCurrent bool) BreadcrumbItem {
	return BreadcrumbItem{Name: "Lab Reports", URL: "/lab/reports", IsCurrent: isCurrent}
}

// LabForm renders the upload form.
func LabForm(t template.Template, data template.Data) {
	data["IsLab"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{
		labBreadcrumb(false),
		{Name: "Scan", IsCurrent: true},
	}
	data["MaxUploadMB"] = labUploadMaxBytes >> 20

	t.HTML(http.StatusOK, "lab_upload")
}

// LabUpload scans an uploaded document or pasted text and stores the
// interpreted results as a report.
func LabUpload(c flamego.Context, s session.Session, scanner *labs.Scanner, m *metrics.Metrics) {
	userID, ok := getSessionUserID(s)
	if !ok {
		SetErrorFlash(s, "Please sign in again")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	if scanner == nil {
		logger.Error("Error scanning lab report", "error", errScannerMissing)
		SetErrorFlash(s, "Lab scanning is not available")
		c.Redirect("/lab", http.StatusSeeOther)

		return
	}

	doc, err := readLabDocument(c)
	if err != nil {
		logger.Warn("Error reading lab upload", "error", err)
		SetErrorFlash(s, uploadErrorMessage(err))
		c.Redirect("/lab", http.StatusSeeOther)

		return
	}

	ctx := c.Request().Context()
	kind := doctext.Detect(doc.Data, doc.ContentType)
	start := time.Now()

	text, err := doctext.Extract(doc.Data, doc.ContentType)
	if err != nil {
		m.ObserveScan(string(kind), time.Since(start), nil, err)
		logger.Warn("Error extracting lab report text", "kind", kind, "title", doc.Title, "error", err)
		SetErrorFlash(s, decodeErrorMessage(err))
		c.Redirect("/lab", http.StatusSeeOther)

		return
	}

	results, err := labs.ScanContext(ctx, scanner, text)
	m.ObserveScan(string(kind), time.Since(start), results, err)

	if err != nil {
		logger.Error("Error scanning lab report", "kind", kind, "error", err)
		SetErrorFlash(s, decodeErrorMessage(err))
		c.Redirect("/lab", http.StatusSeeOther)

		return
	}

	if len(results) == 0 {
		logger.Info("No lab values found", "kind", kind, "title", doc.Title, "chars", len(text))
		SetWarningFlash(s, "No recognised lab values were found in the document")
		c.Redirect("/lab", http.StatusSeeOther)

		return
	}

	reportID, err := db.CreateLabReport(ctx, db.CreateLabReportInput{
		UserID:     userID,
		Title:      doc.Title,
		SourceType: string(kind),
		Results:    results,
	})
	if err != nil {
		logger.Error("Error saving lab report", "user_id", userID, "error", err)
		SetErrorFlash(s, "Failed to save lab report")
		c.Redirect("/lab", http.StatusSeeOther)

		return
	}

	summary := labs.Summarize(results)
	logger.Info("Scanned lab report", "report_id", reportID, "kind", kind, "results", summary.Total, "abnormal", summary.Abnormal())

	SetSuccessFlash(s, fmt.Sprintf("Found %d lab values, %d outside the normal range", summary.Total, summary.Abnormal()))
	c.Redirect("/lab/reports/"+reportID, http.StatusSeeOther)
}

// readLabDocument returns the uploaded file, or the pasted text when no
// file was sent.
func readLabDocument(c flamego.Context) (*labDocument, error) {
	req := c.Request().Request
	req.Body = http.MaxBytesReader(c.ResponseWriter(), req.Body, labUploadMaxBytes)

	if err := req.ParseMultipartForm(labUploadMaxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}

	title := strings.TrimSpace(req.FormValue("title"))

	file, header, err := req.FormFile("document")
	switch {
	case err == nil:
		defer func() {
			if err := file.Close(); err != nil {
				logger.Error("Error closing lab upload file", "error", err)
			}
		}()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}

		if title == "" {
			title = path.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
		}

		return &labDocument{
			Title:       title,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return nil, err
	}

	text := req.FormValue("text")
	if strings.TrimSpace(text) == "" {
		return nil, errNoDocument
	}

	if len(text) > labTextMaxBytes {
		return nil, &http.MaxBytesError{Limit: labTextMaxBytes}
	}

	if title == "" {
		title = "Pasted report"
	}

	return &labDocument{
		Title:       title,
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(text),
	}, nil
}

func uploadErrorMessage(err error) string {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, errNoDocument):
		return "Choose a file or paste the report text"
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("The document is larger than %d MB", labUploadMaxBytes>>20)
	default:
		return "Failed to read the upload"
	}
}

func decodeErrorMessage(err error) string {
	switch {
	case errors.Is(err, labs.ErrEmptyDocument):
		return "The document is empty"
	case errors.Is(err, labs.ErrInvalidUTF8):
		return "The document text is not valid UTF-8"
	case errors.Is(err, doctext.ErrUnsupportedType):
		return "Only PDF, HTML and text documents can be scanned"
	case errors.Is(err, doctext.ErrPasswordProtected):
		return "Password protected PDFs cannot be scanned"
	default:
		return "Could not read text from the document"
	}
}

// ListReports shows the signed-in user's reports, newest first.
func ListReports(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	data["IsLab"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{labBreadcrumb(true)}

	userID, _ := getSessionUserID(s)

	reports, err := db.ListLabReports(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Error fetching lab reports", "user_id", userID, "error", err)
		data["Error"] = "Failed to load lab reports"
	} else {
		data["Reports"] = reports
	}

	t.HTML(http.StatusOK, "lab_reports")
}

// ViewReport shows the interpreted results of one report.
func ViewReport(c flamego.Context, s session.Session, t template.Template, data template.Data, loc *time.Location) {
	userID, _ := getSessionUserID(s)
	reportID := c.Param("id")

	report, err := db.GetLabReport(c.Request().Context(), userID, reportID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			SetErrorFlash(s, "Lab report not found")
		} else {
			logger.Error("Error fetching lab report", "report_id", reportID, "error", err)
			SetErrorFlash(s, "Failed to load lab report")
		}

		c.Redirect("/lab/reports", http.StatusSeeOther)

		return
	}

	data["IsLab"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{
		labBreadcrumb(false),
		{Name: report.Title, IsCurrent: true},
	}
	data["Report"] = report
	data["Summary"] = labs.Summarize(report.Results)
	data["UploadedAt"] = report.CreatedAt.In(locationOrUTC(loc)).Format("Jan 2, 2006 15:04")

	t.HTML(http.StatusOK, "lab_report")
}

// DeleteReport removes a report and its results.
func DeleteReport(c flamego.Context, s session.Session) {
	userID, _ := getSessionUserID(s)
	reportID := c.Param("id")

	if err := db.DeleteLabReport(c.Request().Context(), userID, reportID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			SetErrorFlash(s, "Lab report not found")
		} else {
			logger.Error("Error deleting lab report", "report_id", reportID, "error", err)
			SetErrorFlash(s, "Failed to delete lab report")
		}

		c.Redirect("/lab/reports", http.StatusSeeOther)

		return
	}

	logger.Info("Deleted lab report", "report_id", reportID, "user_id", userID)
	SetSuccessFlash(s, "Lab report deleted")
	c.Redirect("/lab/reports", http.StatusSeeOther)
}

// labTestRow is a registry entry with the user's result count.
type labTestRow struct {
	labs.TestDefinition
	Results int
}

// ListTests shows every test the scanner recognises.
func ListTests(c flamego.Context, s session.Session, t template.Template, data template.Data, scanner *labs.Scanner) {
	data["IsLab"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{
		labBreadcrumb(false),
		{Name: "Tests", IsCurrent: true},
	}

	userID, _ := getSessionUserID(s)

	counts := make(map[string]int)

	tc, err := db.GetTestCounts(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Error counting lab results", "user_id", userID, "error", err)
	}

	for _, count := range tc {
		counts[count.Name] = count.Count
	}

	var rows []labTestRow
	if scanner != nil {
		for _, def := range scanner.Registry().All() {
			rows = append(rows, labTestRow{TestDefinition: def, Results: counts[def.Name]})
		}
	}

	data["Tests"] = rows

	t.HTML(http.StatusOK, "lab_tests")
}

// TestHistory charts every stored value of the test named in the "test"
// query parameter.
func TestHistory(c flamego.Context, s session.Session, t template.Template, data template.Data, scanner *labs.Scanner) {
	name := strings.TrimSpace(c.Query("test"))

	var (
		def   labs.TestDefinition
		known bool
	)
	if scanner != nil {
		def, known = scanner.Registry().Lookup(name)
	}

	if !known {
		SetErrorFlash(s, "Unknown lab test")
		c.Redirect("/lab/tests", http.StatusSeeOther)

		return
	}

	userID, _ := getSessionUserID(s)

	points, err := db.GetTestHistory(c.Request().Context(), userID, def.Name)
	if err != nil {
		logger.Error("Error fetching test history", "test", def.Name, "error", err)
		data["Error"] = "Failed to load test history"
	}

	chart, err := renderTestChart(def.Name, points)
	if err != nil {
		logger.Error("Error rendering test chart", "test", def.Name, "error", err)
	}

	data["IsLab"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{
		labBreadcrumb(false),
		{Name: "Tests", URL: "/lab/tests"},
		{Name: def.Name, IsCurrent: true},
	}
	data["Test"] = def
	data["Points"] = points
	data["Chart"] = htmltemplate.HTML(chart) //nolint:gosec // rendered by go-echarts from stored numbers

	t.HTML(http.StatusOK, "lab_test_history")
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}

	return loc
}
