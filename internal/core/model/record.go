// Package model holds the data shapes the pipeline passes between stages:
// backbone identifier records, annotator outputs, and the fused table.
package model

import "fmt"

// IdentifierRecord is one backbone row: an input identifier and the target
// identifier it resolves to, each qualified by the vocabulary it lives in.
type IdentifierRecord struct {
	Identifier       string `json:"identifier"`
	IdentifierSource string `json:"identifier_source"`
	Target           string `json:"target"`
	TargetSource     string `json:"target_source"`
}

// Key is the four-part identity tuple rows are matched on during combination.
type Key struct {
	Identifier       string
	IdentifierSource string
	Target           string
	TargetSource     string
}

func (r IdentifierRecord) Key() Key {
	return Key{
		Identifier:       r.Identifier,
		IdentifierSource: r.IdentifierSource,
		Target:           r.Target,
		TargetSource:     r.TargetSource,
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s->%s:%s", k.IdentifierSource, k.Identifier, k.TargetSource, k.Target)
}
