/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package doctext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/humaidq/medimind/labs"
)

// SetPDFLicense registers a UniDoc metered key. An empty key is a no-op.
func SetPDFLicense(key string) error {
	if key == "" {
		return nil
	}

	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("failed to set PDF license key: %w", err)
	}

	return nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", pdfError(fmt.Errorf("failed to open PDF: %w", err))
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return "", pdfError(fmt.Errorf("failed checking encryption: %w", err))
	}

	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil {
			return "", pdfError(fmt.Errorf("failed to decrypt PDF: %w", err))
		}

		if !ok {
			return "", pdfError(ErrPasswordProtected)
		}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", pdfError(fmt.Errorf("failed to get page count: %w", err))
	}

	var sb strings.Builder

	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			logger.Warn("Skipping unreadable PDF page", "page", i, "error", err)
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			logger.Warn("Skipping PDF page", "page", i, "error", err)
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			logger.Warn("Failed to extract PDF page text", "page", i, "error", err)
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", pdfError(errNoText)
	}

	return sb.String(), nil
}

func pdfError(err error) error {
	return &labs.DecodeError{Source: "pdf", Offset: -1, Err: err}
}
