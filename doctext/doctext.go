/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package doctext turns uploaded lab report documents into plain text.
package doctext

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/humaidq/medimind/labs"
	"github.com/humaidq/medimind/logging"
)

var logger = logging.Logger(logging.SourceDocText)

// Kind is a supported document format.
type Kind string

// Supported document kinds.
const (
	KindPDF   Kind = "pdf"
	KindHTML  Kind = "html"
	KindText  Kind = "text"
	KindOther Kind = "other"
)

// Detect picks the document kind from the declared content type, falling
// back to sniffing the leading bytes.
func Detect(data []byte, contentType string) Kind {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return KindPDF
	}

	if kind := kindOf(contentType); kind != KindOther && contentType != "application/octet-stream" {
		return kind
	}

	return kindOf(http.DetectContentType(data))
}

func kindOf(contentType string) Kind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case mediaType == "application/pdf":
		return KindPDF
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return KindHTML
	case strings.HasPrefix(mediaType, "text/"):
		return KindText
	default:
		return KindOther
	}
}

// Extract returns the text of a document. Failures are *labs.DecodeError.
func Extract(data []byte, contentType string) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", &labs.DecodeError{Offset: -1, Err: labs.ErrEmptyDocument}
	}

	kind := Detect(data, contentType)
	logger.Debug("Extracting document text", "kind", kind, "bytes", len(data))

	switch kind {
	case KindPDF:
		return extractPDF(data)
	case KindHTML:
		return extractHTML(data, contentType)
	case KindText:
		return decodeText(data, contentType)
	default:
		return "", &labs.DecodeError{Source: contentType, Offset: -1, Err: ErrUnsupportedType}
	}
}
