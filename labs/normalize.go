/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares extracted document text for alias matching. It folds
// compatibility characters (ligatures, full-width digits, no-break spaces),
// upper-cases, and collapses every whitespace run into a single space.
// Upper-casing can expose new compositions, so the fold runs again after it.
func Normalize(raw string) string {
	folded := norm.NFKC.String(strings.ToUpper(norm.NFKC.String(raw)))

	var b strings.Builder
	b.Grow(len(folded))

	pendingSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
