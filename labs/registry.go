/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"math"
	"strings"
)

// TestDefinition describes one canonical lab test and how to find it in text.
type TestDefinition struct {
	Name         string
	SimpleName   string
	Unit         string
	Min          float64
	Max          float64
	Explanation  string
	LowSymptoms  string
	HighSymptoms string
	// Aliases are tried in order; the first one found in the text wins.
	Aliases []string
}

// Registry is an immutable, ordered set of test definitions. The order is
// the tie-break order used when aliases of different tests overlap.
type Registry struct {
	defs   []TestDefinition
	byName map[string]int
}

// NewRegistry validates defs and returns a frozen registry. The slice and
// the alias lists are copied, so later changes by the caller are not seen.
func NewRegistry(defs []TestDefinition) (*Registry, error) {
	r := &Registry{
		defs:   make([]TestDefinition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		def.Name = strings.TrimSpace(def.Name)
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
		if _, dup := r.byName[def.Name]; dup {
			return nil, &ConfigError{Test: def.Name, Err: ErrDuplicateTest}
		}

		def.Aliases = cleanAliases(def.Name, def.Aliases)
		r.byName[def.Name] = len(r.defs)
		r.defs = append(r.defs, def)
	}

	return r, nil
}

func validateDefinition(def TestDefinition) error {
	if def.Name == "" {
		return &ConfigError{Err: ErrEmptyName}
	}
	if math.IsNaN(def.Min) || math.IsInf(def.Min, 0) {
		return &ConfigError{Test: def.Name, Column: "min", Err: ErrInvalidNumber}
	}
	if math.IsNaN(def.Max) || math.IsInf(def.Max, 0) {
		return &ConfigError{Test: def.Name, Column: "max", Err: ErrInvalidNumber}
	}
	if def.Min > def.Max {
		return &ConfigError{Test: def.Name, Err: ErrInvertedRange}
	}

	return nil
}

// cleanAliases trims and drops empty aliases, falling back to the canonical
// name when nothing is left.
func cleanAliases(name string, aliases []string) []string {
	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if alias = strings.TrimSpace(alias); alias != "" {
			out = append(out, alias)
		}
	}
	if len(out) == 0 {
		out = append(out, name)
	}

	return out
}

// Lookup returns the definition with the given canonical name.
func (r *Registry) Lookup(name string) (TestDefinition, bool) {
	if r == nil {
		return TestDefinition{}, false
	}
	i, ok := r.byName[name]
	if !ok {
		return TestDefinition{}, false
	}

	return r.defs[i].clone(), true
}

// All returns every definition in registry order.
func (r *Registry) All() []TestDefinition {
	if r == nil {
		return nil
	}
	out := make([]TestDefinition, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.clone()
	}

	return out
}

// Names returns the canonical names in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Name
	}

	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.defs)
}

func (d TestDefinition) clone() TestDefinition {
	d.Aliases = append([]string(nil), d.Aliases...)
	return d
}

// DisplayName prefers the plain-English label when one is set.
func (d TestDefinition) DisplayName() string {
	if d.SimpleName != "" {
		return d.SimpleName
	}

	return d.Name
}
