/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names accepted in a reference table header, keyed by the field
// they fill. Headers are matched case-insensitively with spaces, dashes and
// underscores ignored.
var tableColumns = map[string][]string{
	"name":          {"canonicalname", "medicalterm", "name", "test"},
	"simple_name":   {"simplename", "simpleenglish"},
	"unit":          {"unit"},
	"min":           {"min", "minimum"},
	"max":           {"max", "maximum"},
	"explanation":   {"explanation", "meaning"},
	"low_symptoms":  {"lowsymptoms"},
	"high_symptoms": {"highsymptoms"},
}

var requiredColumns = []string{"name", "unit", "min", "max", "explanation"}

var aliasColumns = map[string][]string{
	"name":  {"canonicalname", "medicalterm", "name", "test"},
	"alias": {"alias"},
}

func headerKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// mapHeader resolves the position of every known column.
func mapHeader(source string, header []string, known map[string][]string, required []string) (map[string]int, error) {
	positions := make(map[string]int, len(known))
	for i, h := range header {
		key := headerKey(h)
		for field, names := range known {
			if _, seen := positions[field]; seen {
				continue
			}
			for _, name := range names {
				if key == name {
					positions[field] = i
				}
			}
		}
	}

	for _, field := range required {
		if _, ok := positions[field]; !ok {
			return nil, &ConfigError{Source: source, Column: field, Err: ErrMissingColumn}
		}
	}

	return positions, nil
}

func newTableReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	return cr
}

// LoadTable reads a reference table and an optional alias table. Aliases
// are listed one per row; their row order is the alias order. Tests with no
// alias rows fall back to their canonical name.
func LoadTable(ranges io.Reader, aliases io.Reader) ([]TestDefinition, error) {
	defs, err := readRanges("reference table", ranges)
	if err != nil {
		return nil, err
	}

	if aliases != nil {
		if err := readAliases("alias table", aliases, defs); err != nil {
			return nil, err
		}
	}

	return defs, nil
}

func readRanges(source string, r io.Reader) ([]TestDefinition, error) {
	cr := newTableReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Source: source, Err: fmt.Errorf("%w: no header", ErrMalformedTable)}
		}
		return nil, &ConfigError{Source: source, Err: fmt.Errorf("%w: %w", ErrMalformedTable, err)}
	}

	cols, err := mapHeader(source, header, tableColumns, requiredColumns)
	if err != nil {
		return nil, err
	}

	var defs []TestDefinition
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ConfigError{Source: source, Row: row, Err: fmt.Errorf("%w: %w", ErrMalformedTable, err)}
		}
		if blankRecord(record) {
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		def := TestDefinition{
			Name:         field("name"),
			SimpleName:   field("simple_name"),
			Unit:         field("unit"),
			Explanation:  field("explanation"),
			LowSymptoms:  field("low_symptoms"),
			HighSymptoms: field("high_symptoms"),
		}
		if def.Name == "" {
			return nil, &ConfigError{Source: source, Row: row, Column: "name", Err: ErrEmptyName}
		}

		if def.Min, err = parseBound(field("min")); err != nil {
			return nil, &ConfigError{Source: source, Row: row, Column: "min", Test: def.Name, Err: err}
		}
		if def.Max, err = parseBound(field("max")); err != nil {
			return nil, &ConfigError{Source: source, Row: row, Column: "max", Test: def.Name, Err: err}
		}
		if def.Min > def.Max {
			return nil, &ConfigError{Source: source, Row: row, Test: def.Name, Err: ErrInvertedRange}
		}

		defs = append(defs, def)
	}

	return defs, nil
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if err := CheckValue("", v); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	return v, nil
}

func readAliases(source string, r io.Reader, defs []TestDefinition) error {
	byName := make(map[string]int, len(defs))
	for i, def := range defs {
		byName[def.Name] = i
	}

	cr := newTableReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ConfigError{Source: source, Err: fmt.Errorf("%w: %w", ErrMalformedTable, err)}
	}

	cols, err := mapHeader(source, header, aliasColumns, []string{"name", "alias"})
	if err != nil {
		return err
	}

	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &ConfigError{Source: source, Row: row, Err: fmt.Errorf("%w: %w", ErrMalformedTable, err)}
		}
		if blankRecord(record) || len(record) <= cols["name"] || len(record) <= cols["alias"] {
			continue
		}

		name := strings.TrimSpace(record[cols["name"]])
		alias := strings.TrimSpace(record[cols["alias"]])
		if alias == "" {
			continue
		}

		i, ok := byName[name]
		if !ok {
			return &ConfigError{Source: source, Row: row, Column: "name", Test: name, Err: ErrUnknownTest}
		}
		defs[i].Aliases = append(defs[i].Aliases, alias)
	}
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}

// LoadTableFiles loads a reference table from disk. aliasPath may be empty.
func LoadTableFiles(rangesPath, aliasPath string) ([]TestDefinition, error) {
	rf, err := os.Open(rangesPath)
	if err != nil {
		return nil, &ConfigError{Source: rangesPath, Err: err}
	}
	defer rf.Close()

	var aliases io.Reader
	if aliasPath != "" {
		af, err := os.Open(aliasPath)
		if err != nil {
			return nil, &ConfigError{Source: aliasPath, Err: err}
		}
		defer af.Close()
		aliases = af
	}

	defs, err := LoadTable(rf, aliases)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			switch cfgErr.Source {
			case "reference table":
				cfgErr.Source = rangesPath
			case "alias table":
				cfgErr.Source = aliasPath
			}
		}
		return nil, err
	}

	return defs, nil
}

// WriteTable writes defs as a reference table and an alias table in the
// format LoadTable reads.
func WriteTable(ranges io.Writer, aliases io.Writer, defs []TestDefinition) error {
	rw := csv.NewWriter(ranges)
	if err := rw.Write([]string{"canonical_name", "simple_name", "unit", "min", "max", "explanation", "low_symptoms", "high_symptoms"}); err != nil {
		return err
	}
	for _, def := range defs {
		if err := rw.Write([]string{
			def.Name, def.SimpleName, def.Unit,
			strconv.FormatFloat(def.Min, 'f', -1, 64),
			strconv.FormatFloat(def.Max, 'f', -1, 64),
			def.Explanation, def.LowSymptoms, def.HighSymptoms,
		}); err != nil {
			return err
		}
	}
	rw.Flush()
	if err := rw.Error(); err != nil {
		return err
	}

	if aliases == nil {
		return nil
	}

	aw := csv.NewWriter(aliases)
	if err := aw.Write([]string{"canonical_name", "alias"}); err != nil {
		return err
	}
	for _, def := range defs {
		for _, alias := range def.Aliases {
			if err := aw.Write([]string{def.Name, alias}); err != nil {
				return err
			}
		}
	}
	aw.Flush()

	return aw.Error()
}
