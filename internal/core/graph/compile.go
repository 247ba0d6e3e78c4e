package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/model"
	"github.com/bioforge/helix/internal/logger"
)

// Direction orients the edge a rule emits relative to the row's anchor node.
type Direction int

const (
	// FromAnchor draws anchor -> entity, the default.
	FromAnchor Direction = iota
	// ToAnchor draws entity -> anchor, for sources reporting actors on the
	// queried entity, e.g. transporter inhibitors.
	ToAnchor
)

// Rule fixes how one source column's records become nodes and edges.
type Rule struct {
	EdgeLabel string    // relation used when a record carries none
	Kind      string    // node category for referenced entities
	Namespace string    // fallback vocabulary when a record carries none
	Direction Direction
}

// Rules maps source column names to compile rules. Sources without an entry
// compile under DefaultRule.
type Rules map[string]Rule

// DefaultRule handles sources nobody registered a rule for.
var DefaultRule = Rule{
	EdgeLabel: "associated_with",
	Kind:      "Entity",
}

// Options tune backbone node creation.
type Options struct {
	Kind       string // node category for identifier and target nodes
	Datasource string // label of the mapping service behind the backbone
}

func (o Options) withDefaults() Options {
	if o.Kind == "" {
		o.Kind = "Entity"
	}
	if o.Datasource == "" {
		o.Datasource = "backbone"
	}
	return o
}

// MalformedRecordError reports an annotation record the compiler cannot turn
// into graph elements.
type MalformedRecordError struct {
	Source string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("source %q: malformed annotation record: %v", e.Source, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// CellFailure pins a compile failure to the fused-table cell it came from.
// The cell's remaining records are skipped; everything else compiles.
type CellFailure struct {
	Row    int
	Source string
	Err    error
}

// SourceStats counts one source column's contribution.
type SourceStats struct {
	Records int // annotation records seen
	Empty   int // no-data placeholders among them
	Edges   int // edges emitted
}

// Report summarizes a compilation.
type Report struct {
	Nodes     int
	Edges     int
	PerSource map[string]*SourceStats
	Failures  []CellFailure
}

// Compile builds the graph for a fused table. Each row first registers its
// identifier and target nodes (no edge between them; the mapping stays in
// the table), then every source cell contributes entity nodes and edges
// under its rule. A malformed record or attribute conflict aborts only the
// cell it occurred in. The input table and ledger are never modified.
func Compile(table *model.Table, ledger metadata.Ledger, rules Rules, opts Options) (*Graph, *Report, error) {
	if table == nil {
		return nil, nil, errors.New("nil table")
	}
	opts = opts.withDefaults()

	g := New()
	g.Provenance = ledger.Clone()
	report := &Report{PerSource: make(map[string]*SourceStats, len(table.Sources))}
	for _, name := range table.Sources {
		report.PerSource[name] = &SourceStats{}
	}

	for i := range table.Rows {
		row := &table.Rows[i]
		anchor, err := backboneNodes(g, row, opts)
		if err != nil {
			report.Failures = append(report.Failures, CellFailure{Row: i, Source: opts.Datasource, Err: err})
			logger.Warn("skipping row, backbone node registration failed", "row", i, "err", err)
			continue
		}
		for _, name := range table.Sources {
			rule, ok := rules[name]
			if !ok {
				rule = DefaultRule
			}
			if err := compileCell(g, anchor, row.Annotations[name], name, rule, report.PerSource[name]); err != nil {
				report.Failures = append(report.Failures, CellFailure{Row: i, Source: name, Err: err})
				logger.Warn("skipping cell", "row", i, "source", name, "err", err)
			}
		}
	}

	report.Nodes = g.NodeCount()
	report.Edges = g.EdgeCount()
	logger.Info("compiled graph",
		"nodes", report.Nodes, "edges", report.Edges,
		"rows", len(table.Rows), "failures", len(report.Failures))
	return g, report, nil
}

// backboneNodes registers the row's identifier and target nodes and returns
// the anchor annotation edges attach to. The two nodes are distinct unless
// the row maps an identifier onto itself in the same vocabulary.
func backboneNodes(g *Graph, row *model.Row, opts Options) (*Node, error) {
	idKey := NodeKey{Value: row.Identifier, Namespace: row.IdentifierSource}
	if _, err := g.AddNode(idKey, opts.Kind, opts.Datasource, row.Identifier, nil); err != nil {
		return nil, err
	}
	targetKey := NodeKey{Value: row.Target, Namespace: row.TargetSource}
	return g.AddNode(targetKey, opts.Kind, opts.Datasource, row.Target, nil)
}

func compileCell(g *Graph, anchor *Node, cell []model.Annotation, source string, rule Rule, stats *SourceStats) error {
	for _, a := range cell {
		stats.Records++
		if a.Empty() {
			// Queried with no result: counted, contributes nothing.
			stats.Empty++
			continue
		}
		if err := a.Validate(); err != nil {
			return &MalformedRecordError{Source: source, Err: err}
		}
		node, err := annotationNode(g, a, source, rule)
		if err != nil {
			return err
		}
		label := a.Relation
		if label == "" {
			label = rule.EdgeLabel
		}
		if rule.Direction == ToAnchor {
			g.AddEdge(node, anchor, label, source, a.Attributes)
		} else {
			g.AddEdge(anchor, node, label, source, a.Attributes)
		}
		stats.Edges++
	}
	return nil
}

// annotationNode registers the entity a record refers to. The record's open
// attributes describe the assertion, not the entity, so they stay off the
// node and ride the edge instead. Records without an ID are keyed by display
// name so repeated mentions collapse, and get a minted placeholder
// identifier on first sight.
func annotationNode(g *Graph, a model.Annotation, source string, rule Rule) (*Node, error) {
	ns := a.Namespace
	if ns == "" {
		ns = rule.Namespace
	}
	if ns == "" {
		ns = source
	}

	key := NodeKey{Value: a.ID, Namespace: ns}
	var attrs map[string]any
	if a.ID == "" {
		if a.Name == "" {
			return nil, &MalformedRecordError{Source: source, Err: errors.New("record names no entity: id and name both empty")}
		}
		key.Value = a.Name
		if _, ok := g.Node(key); !ok {
			attrs = map[string]any{"placeholder_id": uuid.NewString()}
		}
	}
	return g.AddNode(key, rule.Kind, source, a.Name, attrs)
}
