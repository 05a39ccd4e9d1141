/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/medimind/labs"
)

// SyncLabTests mirrors reg into lab_tests. Rows keep registry order in
// position, and tests no longer in the registry are removed.
func SyncLabTests(ctx context.Context, reg *labs.Registry) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if reg == nil {
		return labs.ErrNoRegistry
	}

	defs := reg.All()
	logger.Infof("Syncing %d lab test definitions to database...", len(defs))

	query := `
		INSERT INTO lab_tests (name, position, simple_name, unit, min_value, max_value, explanation, low_symptoms, high_symptoms, aliases)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name)
		DO UPDATE SET
			position = EXCLUDED.position,
			simple_name = EXCLUDED.simple_name,
			unit = EXCLUDED.unit,
			min_value = EXCLUDED.min_value,
			max_value = EXCLUDED.max_value,
			explanation = EXCLUDED.explanation,
			low_symptoms = EXCLUDED.low_symptoms,
			high_symptoms = EXCLUDED.high_symptoms,
			aliases = EXCLUDED.aliases,
			updated_at = now()
	`

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, def := range defs {
			_, err := tx.Exec(ctx, query,
				def.Name, i, def.SimpleName, def.Unit,
				def.Min, def.Max, def.Explanation,
				def.LowSymptoms, def.HighSymptoms, def.Aliases,
			)
			if err != nil {
				return fmt.Errorf("failed to sync lab test %s: %w", def.Name, err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM lab_tests WHERE NOT (name = ANY($1))`, reg.Names())
		if err != nil {
			return fmt.Errorf("failed to prune lab tests: %w", err)
		}

		if tag.RowsAffected() > 0 {
			logger.Info("Removed retired lab tests", "count", tag.RowsAffected())
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Infof("Successfully synced %d lab tests", len(defs))

	return nil
}

// LoadRegistry rebuilds the registry stored by SyncLabTests.
func LoadRegistry(ctx context.Context) (*labs.Registry, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT name, simple_name, unit, min_value, max_value, explanation, low_symptoms, high_symptoms, aliases
		FROM lab_tests
		ORDER BY position ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lab tests: %w", err)
	}
	defer rows.Close()

	var defs []labs.TestDefinition

	for rows.Next() {
		var def labs.TestDefinition
		if err := rows.Scan(
			&def.Name, &def.SimpleName, &def.Unit, &def.Min, &def.Max,
			&def.Explanation, &def.LowSymptoms, &def.HighSymptoms, &def.Aliases,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lab test: %w", err)
		}

		defs = append(defs, def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab tests: %w", err)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no lab tests stored: %w", ErrNotFound)
	}

	reg, err := labs.NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("stored lab tests are invalid: %w", err)
	}

	return reg, nil
}
