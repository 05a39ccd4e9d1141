/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/medimind/doctext"
	"github.com/humaidq/medimind/labs"
)

var CmdScan = &cli.Command{
	Name:      "scan",
	Usage:     "Extract and interpret lab values from report files",
	ArgsUsage: "FILE... (use - for standard input)",
	Flags:     registryFlags(),
	Action:    scan,
}

func scan(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errNoFiles
	}

	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	scanner, err := newScanner(cmd, reg)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	errOut := cmd.Root().ErrWriter

	failed := 0

	for _, name := range files {
		if err := scanFile(ctx, out, scanner, name); err != nil {
			fmt.Fprintf(errOut, "Error: %s: %v\n", name, err)

			failed++
		}
	}

	if failed == len(files) {
		return errAllFilesFailed
	}

	return nil
}

func scanFile(ctx context.Context, w io.Writer, scanner *labs.Scanner, name string) error {
	data, contentType, err := readScanInput(name)
	if err != nil {
		return err
	}

	text, err := doctext.Extract(data, contentType)
	if err != nil {
		return err
	}

	results, err := labs.ScanContext(ctx, scanner, text)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nScanning %s...\n\n", name)
	printResults(w, results)

	return nil
}

func readScanInput(name string) ([]byte, string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "text/plain", err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", err
	}

	return data, mime.TypeByExtension(filepath.Ext(name)), nil
}

// printResults writes results in the terminal report format, one block
// per test separated by blank lines.
func printResults(w io.Writer, results []labs.Interpretation) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No medical data found in document.")
		return
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s → %q\n", r.Name, r.SimpleName)
		fmt.Fprintln(w, "Value")
		fmt.Fprintf(w, "%s %s\n", strconv.FormatFloat(r.Value, 'f', -1, 64), r.Unit)
		fmt.Fprintln(w, "Status")
		fmt.Fprintln(w, r.Status)
		fmt.Fprintln(w, r.Explanation)
		fmt.Fprintln(w)
	}
}
