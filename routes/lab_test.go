// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/doctext"
	"github.com/humaidq/medimind/labs"
	"github.com/humaidq/medimind/metrics"
)

func newLabTestApp(t *testing.T, s session.Session) *flamego.Flame {
	t.Helper()

	scanner := newTestScanner(t)

	f := newTestApp(s)
	f.Post("/lab", func(c flamego.Context, sess session.Session) {
		LabUpload(c, sess, scanner, metrics.New())
	})

	return f
}

func TestLabUploadPastedText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantType  FlashType
		wantFlash string
	}{
		{
			name:      "nothing submitted",
			text:      "   ",
			wantType:  FlashError,
			wantFlash: "Choose a file or paste the report text",
		},
		{
			name:      "no known tests",
			text:      "Patient name: Asha\nReferred by: Dr. Rao",
			wantType:  FlashWarning,
			wantFlash: "No recognised lab values were found in the document",
		},
		{
			name:      "results found but not stored",
			text:      "HAEMOGLOBIN 11.2 g/dL\nPLATELET COUNT 250000",
			wantType:  FlashError,
			wantFlash: "Failed to save lab report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := signedInSession()
			f := newLabTestApp(t, s)

			rec := performFormPOST(t, f, "/lab", url.Values{"text": {tt.text}})
			assertRedirect(t, rec, "/lab")
			assertFlash(t, s, tt.wantType, tt.wantFlash)
		})
	}
}

func TestLabUploadRequiresSessionUser(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	f := newLabTestApp(t, s)

	rec := performFormPOST(t, f, "/lab", url.Values{"text": {"HB 12"}})
	assertRedirect(t, rec, "/login")
}

func TestLabUploadRejectsUnsupportedFile(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="document"; filename="scan.png"`)
	header.Set("Content-Type", "image/png")

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}

	if _, err := part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	s := signedInSession()
	f := newLabTestApp(t, s)

	req := httptest.NewRequest(http.MethodPost, "/lab", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/lab")
	assertFlash(t, s, FlashError, "Only PDF, HTML and text documents can be scanned")
}

func TestDecodeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: &labs.DecodeError{Offset: -1, Err: labs.ErrEmptyDocument}, want: "The document is empty"},
		{err: &labs.DecodeError{Source: "utf-8", Offset: 4, Err: labs.ErrInvalidUTF8}, want: "The document text is not valid UTF-8"},
		{err: &labs.DecodeError{Source: "pdf", Offset: -1, Err: doctext.ErrPasswordProtected}, want: "Password protected PDFs cannot be scanned"},
		{err: errors.New("boom"), want: "Could not read text from the document"},
	}

	for _, tt := range tests {
		if got := decodeErrorMessage(tt.err); got != tt.want {
			t.Fatalf("decodeErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestTestHistoryUnknownTest(t *testing.T) {
	t.Parallel()

	s := signedInSession()
	scanner := newTestScanner(t)

	f := newTestApp(s)
	f.Get("/lab/history", func(c flamego.Context, sess session.Session) {
		TestHistory(c, sess, nil, nil, scanner)
	})

	assertRedirect(t, performGET(t, f, "/lab/history?test=Ferritin"), "/lab/tests")
	assertFlash(t, s, FlashError, "Unknown lab test")
}

func TestDeleteReportNotFound(t *testing.T) {
	t.Parallel()

	s := signedInSession()
	f := newTestApp(s)
	f.Post("/lab/reports/{id}/delete", DeleteReport)

	rec := performFormPOST(t, f, "/lab/reports/not-a-uuid/delete", nil)
	assertRedirect(t, rec, "/lab/reports")
	assertFlash(t, s, FlashError, "Failed to delete lab report")
}

func TestRenderTestChart(t *testing.T) {
	t.Parallel()

	empty, err := renderTestChart("Hemoglobin", nil)
	if err != nil || empty != "" {
		t.Fatalf("expected empty chart for no points, got %q, %v", empty, err)
	}

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	points := []db.TestHistoryPoint{
		{Value: 11.2, Unit: "g/dL", Min: 13, Max: 17, Status: labs.StatusLow, CreatedAt: start},
		{Value: 13.9, Unit: "g/dL", Min: 13, Max: 17, Status: labs.StatusNormal, CreatedAt: start.AddDate(0, 2, 0)},
	}

	chart, err := renderTestChart("Hemoglobin", points)
	if err != nil {
		t.Fatalf("renderTestChart failed: %v", err)
	}

	for _, want := range []string{"Hemoglobin", "Ref Min", "Ref Max", "Mar 1, 2025 09:00"} {
		if !strings.Contains(chart, want) {
			t.Fatalf("expected chart to contain %q", want)
		}
	}
}

func TestChartBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		refMin, refMax   float64
		dataMin, dataMax float64
		wantLo, wantHi   float64
	}{
		{name: "inside range", refMin: 10, refMax: 20, dataMin: 12, dataMax: 18, wantLo: 9, wantHi: 21},
		{name: "above range", refMin: 10, refMax: 20, dataMin: 12, dataMax: 32, wantLo: 9, wantHi: 33},
		{name: "clamped at zero", refMin: 0, refMax: 10, dataMin: 1, dataMax: 5, wantLo: 0, wantHi: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lo, hi := chartBounds(tt.refMin, tt.refMax, tt.dataMin, tt.dataMax)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Fatalf("expected [%v, %v], got [%v, %v]", tt.wantLo, tt.wantHi, lo, hi)
			}
		})
	}
}
