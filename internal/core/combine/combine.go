// Package combine fuses annotator outputs onto an identifier backbone with a
// left outer join over the four-part identity tuple.
package combine

import (
	"errors"
	"fmt"

	"github.com/bioforge/helix/internal/core/model"
	"github.com/bioforge/helix/internal/logger"
)

// ErrUnnamedSource rejects a source table with an empty column name.
var ErrUnnamedSource = errors.New("source table has no name")

// backbone column names a source may not reuse.
var reserved = map[string]bool{
	"identifier":        true,
	"identifier_source": true,
	"target":            true,
	"target_source":     true,
}

// DuplicateColumnError reports a source whose column name is already taken,
// by the backbone itself or by another source in the same combination.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate source column %q", e.Column)
}

// RowCountError reports a fused table whose row count drifted from the
// backbone's.
type RowCountError struct {
	Backbone int
	Got      int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("fused table has %d rows, backbone has %d", e.Got, e.Backbone)
}

// Warning records a source row whose identity tuple matched no backbone row.
// The row is dropped from the fusion.
type Warning struct {
	Source string
	Key    model.Key
}

func (w Warning) String() string {
	return fmt.Sprintf("source %q: no backbone row for %s", w.Source, w.Key)
}

// Combine left-joins each source table onto the backbone. Every backbone row
// appears exactly once in the result, in backbone order, with one annotation
// cell per source; source rows the backbone lacks are dropped with a warning.
// The whole combination fails before any merging when a source column name is
// empty, collides with a backbone column, or repeats.
func Combine(backbone []model.IdentifierRecord, sources ...model.SourceTable) (*model.Table, []Warning, error) {
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		switch {
		case src.Name == "":
			return nil, nil, ErrUnnamedSource
		case reserved[src.Name], seen[src.Name]:
			return nil, nil, &DuplicateColumnError{Column: src.Name}
		}
		seen[src.Name] = true
	}

	table := &model.Table{
		Sources: make([]string, 0, len(sources)),
		Rows:    make([]model.Row, len(backbone)),
	}
	index := make(map[model.Key][]int, len(backbone))
	for i, rec := range backbone {
		table.Rows[i] = model.Row{
			IdentifierRecord: rec,
			Annotations:      make(map[string][]model.Annotation, len(sources)),
		}
		index[rec.Key()] = append(index[rec.Key()], i)
	}

	var warnings []Warning
	for _, src := range sources {
		table.Sources = append(table.Sources, src.Name)
		for i := range table.Rows {
			table.Rows[i].Annotations[src.Name] = []model.Annotation{}
		}
		for _, row := range src.Rows {
			positions, ok := index[row.Key()]
			if !ok {
				warnings = append(warnings, Warning{Source: src.Name, Key: row.Key()})
				logger.Warn("dropping source row with no backbone match",
					"source", src.Name, "key", row.Key().String())
				continue
			}
			// Fan-out within a source concatenates into the matching
			// cell; the fused row count never grows.
			for _, i := range positions {
				table.Rows[i].Annotations[src.Name] = append(table.Rows[i].Annotations[src.Name], row.Annotations...)
			}
		}
	}

	if len(table.Rows) != len(backbone) {
		return nil, warnings, &RowCountError{Backbone: len(backbone), Got: len(table.Rows)}
	}

	logger.Info("combined annotation sources",
		"sources", len(sources), "rows", len(table.Rows), "dropped_rows", len(warnings))
	return table, warnings, nil
}
