// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/humaidq/medimind/labs"
)

func TestSyncAndLoadRegistry(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	t.Cleanup(func() {
		if err := SyncLabTests(ctx, labs.DefaultRegistry()); err != nil {
			t.Fatalf("failed to restore lab tests: %v", err)
		}
	})

	loaded, err := LoadRegistry(ctx)
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	want := labs.DefaultRegistry().Names()
	got := loaded.Names()

	if len(got) != len(want) {
		t.Fatalf("expected %d tests, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected registry order to survive, position %d: %q vs %q", i, want[i], got[i])
		}
	}

	hb, _ := loaded.Lookup("Hemoglobin")
	if len(hb.Aliases) == 0 || hb.Min != 13 || hb.Max != 17 {
		t.Fatalf("unexpected stored hemoglobin %+v", hb)
	}

	small, err := labs.NewRegistry([]labs.TestDefinition{
		{Name: "Calcium", Unit: "mg/dL", Min: 8, Max: 11, Aliases: []string{"CALCIUM", "CA"}},
		{Name: "Hemoglobin", Unit: "g/dL", Min: 12, Max: 16},
	})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if err := SyncLabTests(ctx, small); err != nil {
		t.Fatalf("SyncLabTests failed: %v", err)
	}

	reloaded, err := LoadRegistry(ctx)
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	names := reloaded.Names()
	if len(names) != 2 || names[0] != "Calcium" || names[1] != "Hemoglobin" {
		t.Fatalf("expected pruned, reordered registry, got %v", names)
	}

	ca, _ := reloaded.Lookup("Calcium")
	if len(ca.Aliases) != 2 || ca.Aliases[1] != "CA" {
		t.Fatalf("expected aliases to round trip, got %q", ca.Aliases)
	}

	if err := SyncLabTests(ctx, nil); !errors.Is(err, labs.ErrNoRegistry) {
		t.Fatalf("expected ErrNoRegistry, got %v", err)
	}
}
