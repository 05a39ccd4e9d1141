/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import "math"

// Status is the classification of a value against its reference range.
type Status string

// Status values.
const (
	StatusLow    Status = "LOW"
	StatusNormal Status = "NORMAL"
	StatusHigh   Status = "HIGH"
)

// Symptom text used when a definition has none of its own.
const (
	NormalSymptoms      = "Within healthy range."
	DefaultLowSymptoms  = "Below the reference range. No specific symptoms recorded for this test."
	DefaultHighSymptoms = "Above the reference range. No specific symptoms recorded for this test."
)

// Interpretation is a classified value, ready for display.
type Interpretation struct {
	Name        string
	SimpleName  string
	Value       float64
	Unit        string
	Min         float64
	Max         float64
	Status      Status
	Explanation string
	SymptomText string
}

// Classify places value against the inclusive range [min, max].
func Classify(value, min, max float64) Status {
	switch {
	case value < min:
		return StatusLow
	case value > max:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// CheckValue rejects NaN and infinite values.
func CheckValue(test string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &InvalidValueError{Test: test, Value: value}
	}

	return nil
}

// Interpret classifies value against def.
func Interpret(def TestDefinition, value float64) (Interpretation, error) {
	if err := CheckValue(def.Name, value); err != nil {
		return Interpretation{}, err
	}

	status := Classify(value, def.Min, def.Max)

	return Interpretation{
		Name:        def.Name,
		SimpleName:  def.SimpleName,
		Value:       value,
		Unit:        def.Unit,
		Min:         def.Min,
		Max:         def.Max,
		Status:      status,
		Explanation: def.Explanation,
		SymptomText: symptomText(def, status),
	}, nil
}

func symptomText(def TestDefinition, status Status) string {
	switch status {
	case StatusLow:
		if def.LowSymptoms != "" {
			return def.LowSymptoms
		}
		return DefaultLowSymptoms
	case StatusHigh:
		if def.HighSymptoms != "" {
			return def.HighSymptoms
		}
		return DefaultHighSymptoms
	default:
		return NormalSymptoms
	}
}

// InterpretAll interprets every match in discovery order. Matches whose
// test is not in reg are skipped.
func InterpretAll(ex *Extraction, reg *Registry) []Interpretation {
	out := make([]Interpretation, 0, ex.Len())
	for _, m := range ex.Matches() {
		def, ok := reg.Lookup(m.Name)
		if !ok {
			continue
		}

		result, err := Interpret(def, m.Value)
		if err != nil {
			// ParseFloat can yield +Inf for absurdly long digit runs.
			logger.Warn("Skipping invalid extracted value", "test", m.Name, "error", err)
			continue
		}
		out = append(out, result)
	}

	return out
}

// Summary counts interpretations per status.
type Summary struct {
	Total  int
	Low    int
	Normal int
	High   int
}

// Abnormal returns the number of values outside their range.
func (s Summary) Abnormal() int { return s.Low + s.High }

// Summarize counts results per status.
func Summarize(results []Interpretation) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch r.Status {
		case StatusLow:
			s.Low++
		case StatusHigh:
			s.High++
		default:
			s.Normal++
		}
	}

	return s
}
