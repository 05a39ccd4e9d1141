/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package doctext

import "errors"

var (
	ErrUnsupportedType   = errors.New("unsupported document type")
	ErrPasswordProtected = errors.New("PDF is password protected")

	errNoText         = errors.New("document contains no extractable text")
	errUnknownCharset = errors.New("unknown character set")
)
