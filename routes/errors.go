/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errSessionUserMissing = errors.New("session user missing")
	errNoDocument         = errors.New("no document or text submitted")
	errScannerMissing     = errors.New("lab scanner not configured")
)
