/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/medimind/cmd"
	"github.com/humaidq/medimind/logging"
)

func main() {
	logging.Init()
	logger := logging.Logger(logging.SourceApp)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	app := &cli.Command{
		Name:  "medimind",
		Usage: "MediMind - lab report reader and medicine reminders",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdScan,
			cmd.CmdTests,
			cmd.CmdAdmin,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
