/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/labs"
)

var CmdTests = &cli.Command{
	Name:  "tests",
	Usage: "Print the active reference table",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "from-db",
			Usage: "print the table stored in the database instead",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string, used with --from-db",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "table",
			Usage: "output format: table, csv (reference table) or aliases (alias table)",
		},
	}, registryFlags()...),
	Action: printTests,
}

func printTests(ctx context.Context, cmd *cli.Command) error {
	reg, err := activeRegistry(ctx, cmd)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer

	switch format := cmd.String("format"); format {
	case "table":
		return writeTestTable(out, reg)
	case "csv":
		return labs.WriteTable(out, nil, reg.All())
	case "aliases":
		return labs.WriteTable(io.Discard, out, reg.All())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func activeRegistry(ctx context.Context, cmd *cli.Command) (*labs.Registry, error) {
	if !cmd.Bool("from-db") {
		return loadRegistry(cmd)
	}

	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return nil, errDatabaseURLRequired
	}

	if err := db.Init(ctx, databaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return db.LoadRegistry(ctx)
}

func writeTestTable(w io.Writer, reg *labs.Registry) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Test", "Simple Name", "Range", "Unit", "Aliases"})

	for i, def := range reg.All() {
		row := []string{
			strconv.Itoa(i + 1),
			def.Name,
			def.SimpleName,
			strconv.FormatFloat(def.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(def.Max, 'f', -1, 64),
			def.Unit,
			strings.Join(def.Aliases, ", "),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}
