/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

const (
	// DefaultGap is the maximum number of characters allowed between the end
	// of an alias and the start of its value.
	DefaultGap = 50
	// MaxGap is the largest gap a regexp repeat count accepts.
	MaxGap = 1000
)

// Match is one extracted value.
type Match struct {
	Name   string
	Alias  string
	Value  float64
	Offset int // byte offset of the alias in the scanned text
}

// Extraction holds at most one match per canonical name, in the order the
// matches were discovered.
type Extraction struct {
	matches []Match
	index   map[string]int
}

func newExtraction(n int) *Extraction {
	return &Extraction{
		matches: make([]Match, 0, n),
		index:   make(map[string]int, n),
	}
}

func (e *Extraction) add(m Match) bool {
	if _, ok := e.index[m.Name]; ok {
		return false
	}
	e.index[m.Name] = len(e.matches)
	e.matches = append(e.matches, m)

	return true
}

// Get returns the match for a canonical name.
func (e *Extraction) Get(name string) (Match, bool) {
	if e == nil {
		return Match{}, false
	}
	i, ok := e.index[name]
	if !ok {
		return Match{}, false
	}

	return e.matches[i], true
}

// Matches returns the matches in discovery order.
func (e *Extraction) Matches() []Match {
	if e == nil {
		return nil
	}

	return append([]Match(nil), e.matches...)
}

// Len returns the number of extracted tests.
func (e *Extraction) Len() int {
	if e == nil {
		return 0
	}

	return len(e.matches)
}

type aliasRule struct {
	alias string
	re    *regexp.Regexp
}

type testRules struct {
	name  string
	rules []aliasRule
}

// Scanner extracts and interprets lab values using a fixed registry. Its
// rules are compiled once; a Scanner is safe for concurrent use.
type Scanner struct {
	reg   *Registry
	gap   int
	tests []testRules
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithGap sets the alias-to-value gap bound.
func WithGap(n int) ScannerOption {
	return func(s *Scanner) {
		s.gap = n
	}
}

// NewScanner compiles the alias rules of reg.
func NewScanner(reg *Registry, opts ...ScannerOption) (*Scanner, error) {
	if reg == nil {
		return nil, &ConfigError{Err: ErrNoRegistry}
	}

	s := &Scanner{reg: reg, gap: DefaultGap}
	for _, opt := range opts {
		opt(s)
	}
	if s.gap < 0 || s.gap > MaxGap {
		return nil, &ConfigError{Column: "gap", Err: fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidGap, s.gap, MaxGap)}
	}

	s.tests = make([]testRules, 0, reg.Len())
	for _, def := range reg.defs {
		tr := testRules{name: def.Name, rules: make([]aliasRule, 0, len(def.Aliases))}
		for _, alias := range def.Aliases {
			tr.rules = append(tr.rules, aliasRule{alias: alias, re: aliasPattern(alias, s.gap)})
		}
		s.tests = append(s.tests, tr)
	}

	return s, nil
}

// aliasPattern matches the literal alias, then the shortest run of at most
// gap characters, then a decimal number.
func aliasPattern(alias string, gap int) *regexp.Regexp {
	return regexp.MustCompile(`(?is)` + regexp.QuoteMeta(alias) + `.{0,` + strconv.Itoa(gap) + `}?(\d+\.?\d*)`)
}

// Registry returns the registry the scanner was built from.
func (s *Scanner) Registry() *Registry { return s.reg }

// Gap returns the configured gap bound.
func (s *Scanner) Gap() int { return s.gap }

// Extract finds the first value for every test in registry order. For each
// test the aliases are tried in declared order and the first alias with any
// match wins, using its leftmost match. Tests without a match are absent.
func (s *Scanner) Extract(text string) (*Extraction, error) {
	if !utf8.ValidString(text) {
		return nil, invalidUTF8(text)
	}

	ex := newExtraction(len(s.tests))
	for _, tr := range s.tests {
		for _, rule := range tr.rules {
			loc := rule.re.FindStringSubmatchIndex(text)
			if loc == nil {
				continue
			}

			value, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			if err != nil {
				logger.Debug("Skipping unparsable value", "test", tr.name, "alias", rule.alias, "token", text[loc[2]:loc[3]])
				break
			}

			ex.add(Match{Name: tr.name, Alias: rule.alias, Value: value, Offset: loc[0]})

			break
		}
	}

	return ex, nil
}

// Scan normalizes raw document text, extracts values and interprets them.
func (s *Scanner) Scan(raw string) ([]Interpretation, error) {
	if !utf8.ValidString(raw) {
		return nil, invalidUTF8(raw)
	}

	ex, err := s.Extract(Normalize(raw))
	if err != nil {
		return nil, err
	}

	return InterpretAll(ex, s.reg), nil
}

// ScanContext runs Scan but gives up when ctx is done first. The scan
// itself keeps running to completion in the background.
func ScanContext(ctx context.Context, s *Scanner, raw string) ([]Interpretation, error) {
	type result struct {
		results []Interpretation
		err     error
	}

	done := make(chan result, 1)
	go func() {
		results, err := s.Scan(raw)
		done <- result{results: results, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.results, r.err
	}
}

// Extract runs a one-off scan of normalized text with DefaultGap.
func Extract(text string, reg *Registry) (*Extraction, error) {
	s, err := NewScanner(reg)
	if err != nil {
		return nil, err
	}

	return s.Extract(text)
}

func invalidUTF8(text string) *DecodeError {
	offset := 0
	for offset < len(text) {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}

	return &DecodeError{Offset: offset, Err: ErrInvalidUTF8}
}
