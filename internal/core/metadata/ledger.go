// Package metadata tracks which annotators contributed to a fused dataset,
// when they ran, and what they warned about. The ledger is append-only;
// combination and graph compilation read it but never write it.
package metadata

import "time"

// Entry describes one annotator query run.
type Entry struct {
	SourceName    string    `json:"source_name"`
	SourceVersion string    `json:"source_version,omitempty"`
	QueryDate     time.Time `json:"query_date"`
	QueryDuration float64   `json:"query_duration_seconds,omitempty"`
	Warnings      []string  `json:"warnings,omitempty"`
}

// Ledger groups entries by source name. Re-running a source appends a second
// entry; nothing is merged or deduplicated among entries.
type Ledger map[string][]Entry

// Append returns a new ledger holding every entry of l plus the given
// entries, in arrival order per source. l is never modified.
func Append(l Ledger, entries ...Entry) Ledger {
	out := make(Ledger, len(l)+len(entries))
	for name, es := range l {
		out[name] = append([]Entry(nil), es...)
	}
	for _, e := range entries {
		out[e.SourceName] = append(out[e.SourceName], e)
	}
	return out
}

// Clone returns a deep copy of the ledger.
func (l Ledger) Clone() Ledger {
	return Append(l)
}

// Size returns the total entry count across all sources.
func (l Ledger) Size() int {
	n := 0
	for _, es := range l {
		n += len(es)
	}
	return n
}
