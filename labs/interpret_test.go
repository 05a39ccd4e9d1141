// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labs

import (
	"errors"
	"math"
	"testing"
)

func TestInterpretBoundaries(t *testing.T) {
	t.Parallel()

	def := TestDefinition{
		Name: "Calcium", Unit: "mg/dL", Min: 8.4, Max: 10.2,
		Explanation:  "Crucial for bones/nerves.",
		LowSymptoms:  "Muscle cramps.",
		HighSymptoms: "Thirst.",
	}

	tests := []struct {
		value    float64
		status   Status
		symptoms string
	}{
		{value: 8.39, status: StatusLow, symptoms: "Muscle cramps."},
		{value: 8.4, status: StatusNormal, symptoms: NormalSymptoms},
		{value: 9.3, status: StatusNormal, symptoms: NormalSymptoms},
		{value: 10.2, status: StatusNormal, symptoms: NormalSymptoms},
		{value: 10.21, status: StatusHigh, symptoms: "Thirst."},
		{value: -1, status: StatusLow, symptoms: "Muscle cramps."},
	}

	for _, tc := range tests {
		got, err := Interpret(def, tc.value)
		if err != nil {
			t.Fatalf("Interpret(%v) failed: %v", tc.value, err)
		}
		if got.Status != tc.status {
			t.Fatalf("Interpret(%v): expected %s, got %s", tc.value, tc.status, got.Status)
		}
		if got.SymptomText != tc.symptoms {
			t.Fatalf("Interpret(%v): expected symptoms %q, got %q", tc.value, tc.symptoms, got.SymptomText)
		}
		if got.Unit != "mg/dL" || got.Explanation != def.Explanation || got.Value != tc.value {
			t.Fatalf("Interpret(%v): unexpected result %+v", tc.value, got)
		}
	}
}

func TestInterpretDefaultSymptoms(t *testing.T) {
	t.Parallel()

	def := TestDefinition{Name: "MCV", Min: 83, Max: 101}

	low, _ := Interpret(def, 70)
	if low.SymptomText != DefaultLowSymptoms {
		t.Fatalf("expected default low symptoms, got %q", low.SymptomText)
	}

	high, _ := Interpret(def, 120)
	if high.SymptomText != DefaultHighSymptoms {
		t.Fatalf("expected default high symptoms, got %q", high.SymptomText)
	}
}

func TestInterpretRejectsNonFinite(t *testing.T) {
	t.Parallel()

	def := TestDefinition{Name: "MCV", Min: 83, Max: 101}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Interpret(def, v)

		var invalid *InvalidValueError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidValueError for %v, got %v", v, err)
		}
		if invalid.Test != "MCV" || !errors.Is(err, ErrNonFinite) {
			t.Fatalf("unexpected error contents: %v", err)
		}
	}
}

func TestInterpretAllSkipsUnknownTests(t *testing.T) {
	t.Parallel()

	ex := newExtraction(3)
	ex.add(Match{Name: "Calcium", Value: 11})
	ex.add(Match{Name: "Retired Test", Value: 1})
	ex.add(Match{Name: "Hemoglobin", Value: 14})

	if ex.add(Match{Name: "Calcium", Value: 1}) {
		t.Fatalf("expected duplicate entry to be rejected")
	}

	results := InterpretAll(ex, DefaultRegistry())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].Name != "Calcium" || results[0].Status != StatusHigh {
		t.Fatalf("expected Calcium HIGH first, got %+v", results[0])
	}
	if results[1].Name != "Hemoglobin" || results[1].Status != StatusNormal {
		t.Fatalf("expected Hemoglobin NORMAL second, got %+v", results[1])
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]Interpretation{
		{Status: StatusLow}, {Status: StatusNormal}, {Status: StatusNormal}, {Status: StatusHigh},
	})
	if s.Total != 4 || s.Low != 1 || s.Normal != 2 || s.High != 1 || s.Abnormal() != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
