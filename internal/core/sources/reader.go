// Package sources reads annotator output tables from disk. A file is the
// JSON rendering of the per-annotator contract: a named annotation column
// keyed by identity tuple, plus the provenance entry for the query run.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/bioforge/helix/internal/core/model"
	"github.com/bioforge/helix/internal/logger"
)

// ReadTable loads and validates one source table file.
func ReadTable(path string) (model.SourceTable, error) {
	var table model.SourceTable
	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("failed to read source table '%s': %w", path, err)
	}
	if err := json.Unmarshal(data, &table); err != nil {
		return table, fmt.Errorf("failed to parse source table '%s': %w", path, err)
	}
	if err := Validate(&table); err != nil {
		return table, fmt.Errorf("invalid source table '%s': %w", path, err)
	}
	return table, nil
}

// Validate checks the contract and drops null attribute values, which
// annotators emit for fields they queried but could not fill. A record that
// was all nulls stays in place as the no-data placeholder.
func Validate(t *model.SourceTable) error {
	if t.Name == "" {
		return errors.New("source_name is empty")
	}
	for i, row := range t.Rows {
		for j, a := range row.Annotations {
			if err := a.Validate(); err != nil {
				return fmt.Errorf("row %d annotation %d: %w", i, j, err)
			}
			t.Rows[i].Annotations[j] = a.Prune()
		}
	}
	return nil
}

// ReadTables loads table files concurrently, keeping input order in the
// result. At most limit files are read at once; limit <= 0 means no cap.
func ReadTables(ctx context.Context, paths []string, limit int) ([]model.SourceTable, error) {
	tables := make([]model.SourceTable, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := ReadTable(path)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("loaded source tables", "count", len(tables))
	return tables, nil
}
