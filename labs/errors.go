/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrEmptyName      = errors.New("test name is empty")
	ErrDuplicateTest  = errors.New("duplicate test name")
	ErrUnknownTest    = errors.New("unknown test name")
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvertedRange  = errors.New("min is greater than max")
	ErrInvalidGap     = errors.New("gap bound out of range")
	ErrInvalidUTF8    = errors.New("text is not valid UTF-8")
	ErrEmptyDocument  = errors.New("document is empty")
	ErrNonFinite      = errors.New("value is not finite")
	ErrNoRegistry     = errors.New("registry is nil")
	ErrMalformedTable = errors.New("malformed table")
)

// ConfigError reports a malformed reference table or scanner setting.
// It is fatal at load time.
type ConfigError struct {
	Source string // file or table the definition came from
	Row    int    // 1-based data row, 0 when not row specific
	Column string
	Test   string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "labs config"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Row > 0 {
		msg += " row " + strconv.Itoa(e.Row)
	}
	if e.Column != "" {
		msg += " column " + strconv.Quote(e.Column)
	}
	if e.Test != "" {
		msg += " test " + strconv.Quote(e.Test)
	}

	return msg + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DecodeError reports document text that could not be obtained or decoded.
type DecodeError struct {
	Source string
	Offset int // byte offset of the first bad byte, -1 if unknown
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "decode"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at byte %d", e.Offset)
	}

	return msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidValueError reports a non-finite value handed to the interpreter.
type InvalidValueError struct {
	Test  string
	Value float64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %q: %v", e.Value, e.Test, ErrNonFinite)
}

func (e *InvalidValueError) Unwrap() error { return ErrNonFinite }
