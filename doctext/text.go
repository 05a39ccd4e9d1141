/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package doctext

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/humaidq/medimind/labs"
)

// decodeText converts data to UTF-8. The charset comes from a BOM, the
// content type parameter, an HTML meta tag, or a UTF-8 validity guess, in
// that order. Bytes declared as UTF-8 must be valid UTF-8.
func decodeText(data []byte, contentType string) (string, error) {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if enc == nil {
		return "", &labs.DecodeError{Source: contentType, Offset: -1, Err: errUnknownCharset}
	}

	if name == "utf-8" {
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		if !utf8.Valid(data) {
			return "", &labs.DecodeError{Source: "utf-8", Offset: firstInvalid(data), Err: labs.ErrInvalidUTF8}
		}

		return string(data), nil
	}

	logger.Debug("Decoding document", "charset", name, "certain", certain)

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &labs.DecodeError{Source: name, Offset: -1, Err: fmt.Errorf("failed to decode text: %w", err)}
	}

	return string(out), nil
}

func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}

	return -1
}
