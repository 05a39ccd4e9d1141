// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/medimind/labs"
)

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{value: "", want: false},
		{value: "production", want: false},
		{value: "PROD", want: false},
		{value: "development", want: true},
		{value: " dev ", want: true},
		{value: "staging", wantErr: true},
	}

	for _, tc := range tests {
		t.Setenv(runtimeEnvVar, tc.value)

		got, err := isDevelopment()
		if tc.wantErr {
			if !errors.Is(err, errInvalidRuntimeEnv) {
				t.Fatalf("%q: expected errInvalidRuntimeEnv, got %v", tc.value, err)
			}

			continue
		}

		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.value, err)
		}

		if got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.value, tc.want, got)
		}
	}
}

// runRegistryCommand parses args against registryFlags and returns the
// registry and scanner gap the command would use.
func runRegistryCommand(t *testing.T, args ...string) (*labs.Registry, *labs.Scanner, error) {
	t.Helper()

	var (
		reg     *labs.Registry
		scanner *labs.Scanner
	)

	cmd := &cli.Command{
		Name:  "test",
		Flags: registryFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			var err error

			reg, err = loadRegistry(cmd)
			if err != nil {
				return err
			}

			scanner, err = newScanner(cmd, reg)

			return err
		},
	}

	err := cmd.Run(context.Background(), append([]string{"test"}, args...))

	return reg, scanner, err
}

func TestLoadRegistryBuiltin(t *testing.T) {
	t.Parallel()

	reg, scanner, err := runRegistryCommand(t)
	if err != nil {
		t.Fatalf("expected built-in registry, got %v", err)
	}

	if reg.Len() != labs.DefaultRegistry().Len() {
		t.Fatalf("expected %d tests, got %d", labs.DefaultRegistry().Len(), reg.Len())
	}

	if scanner.Gap() != labs.DefaultGap {
		t.Fatalf("expected default gap %d, got %d", labs.DefaultGap, scanner.Gap())
	}
}

func TestLoadRegistryAliasWithoutReferenceTable(t *testing.T) {
	t.Parallel()

	_, _, err := runRegistryCommand(t, "--alias-table", "aliases.csv")
	if !errors.Is(err, errAliasTableWithoutRefs) {
		t.Fatalf("expected errAliasTableWithoutRefs, got %v", err)
	}
}

func TestLoadRegistryFromFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ranges := filepath.Join(dir, "ranges.csv")
	aliases := filepath.Join(dir, "aliases.csv")

	if err := os.WriteFile(ranges, []byte("canonical_name,unit,min,max,explanation\nFerritin,ng/mL,30,400,Iron stores.\n"), 0o600); err != nil {
		t.Fatalf("failed to write ranges: %v", err)
	}

	if err := os.WriteFile(aliases, []byte("canonical_name,alias\nFerritin,S. FERRITIN\n"), 0o600); err != nil {
		t.Fatalf("failed to write aliases: %v", err)
	}

	reg, scanner, err := runRegistryCommand(t, "--reference-table", ranges, "--alias-table", aliases, "--gap", "10")
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}

	def, ok := reg.Lookup("Ferritin")
	if !ok || reg.Len() != 1 {
		t.Fatalf("expected only Ferritin, got %v", reg.Names())
	}

	if len(def.Aliases) != 1 || def.Aliases[0] != "S. FERRITIN" {
		t.Fatalf("expected alias from table, got %q", def.Aliases)
	}

	if scanner.Gap() != 10 {
		t.Fatalf("expected gap 10, got %d", scanner.Gap())
	}
}

func TestLoadRegistryRejectsBadTable(t *testing.T) {
	t.Parallel()

	ranges := filepath.Join(t.TempDir(), "ranges.csv")
	if err := os.WriteFile(ranges, []byte("canonical_name,unit,min,max,explanation\nFerritin,ng/mL,400,30,x\n"), 0o600); err != nil {
		t.Fatalf("failed to write ranges: %v", err)
	}

	_, _, err := runRegistryCommand(t, "--reference-table", ranges)
	if !errors.Is(err, labs.ErrInvertedRange) {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}
}

func TestAdminCommandRequiresUsername(t *testing.T) {
	t.Parallel()

	app := &cli.Command{Name: "medimind", Commands: []*cli.Command{CmdAdmin}}

	err := app.Run(context.Background(), []string{"medimind", "admin", "--database-url", "postgres://localhost/medimind", "grant"})
	if !errors.Is(err, errUsernameRequired) {
		t.Fatalf("expected errUsernameRequired, got %v", err)
	}
}
