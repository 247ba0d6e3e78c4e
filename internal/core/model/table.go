package model

import "github.com/bioforge/helix/internal/core/metadata"

// SourceRow is one row of an annotator's output: the identity tuple it was
// queried with plus the records returned for it.
type SourceRow struct {
	IdentifierRecord
	Annotations []Annotation `json:"annotations"`
}

// SourceTable is one annotator's complete output: a named annotation column
// keyed by identity tuple, plus the provenance entry for the query run.
type SourceTable struct {
	Name     string         `json:"source_name"`
	Rows     []SourceRow    `json:"rows"`
	Metadata metadata.Entry `json:"metadata"`
}

// Row is one fused row: the backbone identity tuple plus one annotation cell
// per combined source. Cells are empty slices, never nil, when a source had
// nothing for the row.
type Row struct {
	IdentifierRecord
	Annotations map[string][]Annotation `json:"annotations"`
}

// Table is the result of combining source tables onto a backbone. Rows keep
// backbone order; Sources keeps combination order.
type Table struct {
	Sources []string `json:"sources"`
	Rows    []Row    `json:"rows"`
}

func (t *Table) HasSource(name string) bool {
	for _, s := range t.Sources {
		if s == name {
			return true
		}
	}
	return false
}
