/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/medimind/labs"
)

const runtimeEnvVar = "ENV"

// registryFlags select the reference table and the scanner gap. They are
// shared by every command that scans.
func registryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "reference-table",
			Sources: cli.EnvVars("LAB_REFERENCE_TABLE"),
			Usage:   "CSV reference table (canonical_name, unit, min, max, explanation, ...); built-in table when empty",
		},
		&cli.StringFlag{
			Name:    "alias-table",
			Sources: cli.EnvVars("LAB_ALIAS_TABLE"),
			Usage:   "CSV alias table (canonical_name, alias) for --reference-table",
		},
		&cli.IntFlag{
			Name:    "gap",
			Sources: cli.EnvVars("LAB_GAP"),
			Value:   labs.DefaultGap,
			Usage:   "maximum characters between a test name and its value",
		},
	}
}

// loadRegistry builds the registry from the CSV tables, or the built-in
// table when none is given.
func loadRegistry(cmd *cli.Command) (*labs.Registry, error) {
	rangesPath := cmd.String("reference-table")
	aliasPath := cmd.String("alias-table")

	if rangesPath == "" {
		if aliasPath != "" {
			return nil, errAliasTableWithoutRefs
		}

		return labs.DefaultRegistry(), nil
	}

	defs, err := labs.LoadTableFiles(rangesPath, aliasPath)
	if err != nil {
		return nil, err
	}

	reg, err := labs.NewRegistry(defs)
	if err != nil {
		return nil, err
	}

	appLogger.Info("Loaded reference table", "path", rangesPath, "aliases", aliasPath, "tests", reg.Len())

	return reg, nil
}

func newScanner(cmd *cli.Command, reg *labs.Registry) (*labs.Scanner, error) {
	return labs.NewScanner(reg, labs.WithGap(int(cmd.Int("gap"))))
}

// isDevelopment reads the runtime environment. An unset value means
// production.
func isDevelopment() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(runtimeEnvVar))) {
	case "development", "dev":
		return true, nil
	case "", "production", "prod":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", errInvalidRuntimeEnv, os.Getenv(runtimeEnvVar))
	}
}
