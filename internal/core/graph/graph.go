// Package graph compiles fused annotation tables into a directed
// multi-relational graph. Storage is gonum's multigraph so parallel
// assertions between the same two entities stay distinct edges.
package graph

import (
	"fmt"
	"reflect"
	"strconv"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/bioforge/helix/internal/core/metadata"
)

// NodeKey identifies a node: an entity value qualified by the vocabulary it
// lives in. Every occurrence of the same key anywhere in a fused table
// compiles to one node.
type NodeKey struct {
	Value     string `json:"value"`
	Namespace string `json:"namespace"`
}

func (k NodeKey) String() string {
	if k.Namespace == "" {
		return k.Value
	}
	return k.Namespace + ":" + k.Value
}

// Node is a graph vertex. The int64 id exists for gonum; identity for
// deduplication is Key.
type Node struct {
	id         int64
	Key        NodeKey
	Kind       string // node category: Gene, Compound, Disease, ...
	Name       string // display name
	Datasource string // label of the source that first asserted the node
	Attrs      map[string]any
}

func (n *Node) ID() int64 { return n.id }

// DOTID names the node in DOT output.
func (n *Node) DOTID() string { return strconv.Quote(n.Key.String()) }

// Attributes exposes the core node fields to the DOT encoder.
func (n *Node) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{
		{Key: "kind", Value: dotValue(n.Kind)},
		{Key: "datasource", Value: dotValue(n.Datasource)},
	}
	if n.Name != "" {
		attrs = append(attrs, encoding.Attribute{Key: "name", Value: dotValue(n.Name)})
	}
	return attrs
}

// Edge is one directed line between two nodes. Repeated assertions produce
// parallel edges, never overwrites.
type Edge struct {
	multi.Line
	Label      string // relation, e.g. "associated_with"
	Datasource string // source column that asserted the edge
	Attrs      map[string]any
}

// Attributes exposes the core edge fields to the DOT encoder.
func (e *Edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: dotValue(e.Label)},
		{Key: "datasource", Value: dotValue(e.Datasource)},
	}
}

// AttributeConflictError reports a node re-registration that tried to change
// a field that already holds a different value.
type AttributeConflictError struct {
	Key       NodeKey
	Attribute string
	Old, New  any
}

func (e *AttributeConflictError) Error() string {
	return fmt.Sprintf("node %s: attribute %q already holds %v, refusing %v",
		e.Key, e.Attribute, e.Old, e.New)
}

// Graph wraps a gonum directed multigraph with key-based node lookup and
// insertion-ordered accessors so exports are deterministic.
type Graph struct {
	mg    *multi.DirectedGraph
	index map[NodeKey]*Node
	nodes []*Node
	edges []*Edge

	// Provenance is the metadata ledger snapshot taken at compile time.
	Provenance metadata.Ledger
}

func New() *Graph {
	return &Graph{
		mg:    multi.NewDirectedGraph(),
		index: make(map[NodeKey]*Node),
	}
}

// Node returns the node registered under key, if any.
func (g *Graph) Node(key NodeKey) (*Node, bool) {
	n, ok := g.index[key]
	return n, ok
}

// AddNode registers a node under key, creating it on first sight and merging
// on every later one. Merging takes the union of fields and attributes; a
// differing value for anything already set fails the call and leaves the
// node untouched. Nil attribute values are dropped.
func (g *Graph) AddNode(key NodeKey, kind, datasource, name string, attrs map[string]any) (*Node, error) {
	n, ok := g.index[key]
	if !ok {
		n = &Node{
			id:         int64(len(g.nodes)),
			Key:        key,
			Kind:       kind,
			Name:       name,
			Datasource: datasource,
			Attrs:      make(map[string]any, len(attrs)),
		}
		for k, v := range attrs {
			if v != nil {
				n.Attrs[k] = v
			}
		}
		g.mg.AddNode(n)
		g.index[key] = n
		g.nodes = append(g.nodes, n)
		return n, nil
	}

	// Detect every conflict before mutating anything.
	if kind != "" && n.Kind != "" && n.Kind != kind {
		return nil, &AttributeConflictError{Key: key, Attribute: "kind", Old: n.Kind, New: kind}
	}
	if name != "" && n.Name != "" && n.Name != name {
		return nil, &AttributeConflictError{Key: key, Attribute: "name", Old: n.Name, New: name}
	}
	for k, v := range attrs {
		if v == nil {
			continue
		}
		if old, ok := n.Attrs[k]; ok && !reflect.DeepEqual(old, v) {
			return nil, &AttributeConflictError{Key: key, Attribute: k, Old: old, New: v}
		}
	}

	if n.Kind == "" {
		n.Kind = kind
	}
	if n.Name == "" {
		n.Name = name
	}
	for k, v := range attrs {
		if v == nil {
			continue
		}
		if _, ok := n.Attrs[k]; !ok {
			n.Attrs[k] = v
		}
	}
	return n, nil
}

// AddEdge appends a new line between two registered nodes. Every call adds a
// distinct edge.
func (g *Graph) AddEdge(from, to *Node, label, datasource string, attrs map[string]any) *Edge {
	e := &Edge{
		Line:       g.mg.NewLine(from, to).(multi.Line),
		Label:      label,
		Datasource: datasource,
	}
	if len(attrs) > 0 {
		e.Attrs = make(map[string]any, len(attrs))
		for k, v := range attrs {
			if v != nil {
				e.Attrs[k] = v
			}
		}
	}
	g.mg.SetLine(e)
	g.edges = append(g.edges, e)
	return e
}

// Nodes returns all nodes in insertion order. The slice is shared; callers
// must not modify it.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns all edges in insertion order. The slice is shared; callers
// must not modify it.
func (g *Graph) Edges() []*Edge { return g.edges }

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

// Multi exposes the underlying gonum multigraph for encoders and algorithms.
func (g *Graph) Multi() *multi.DirectedGraph { return g.mg }

// dotValue formats an attribute value for DOT output. The DOT encoder writes
// attribute values verbatim, so anything that is not a bare identifier gets
// quoted here.
func dotValue(s string) string {
	if s == "" {
		return `""`
	}
	for i, r := range s {
		switch {
		case r == '_',
			'a' <= r && r <= 'z',
			'A' <= r && r <= 'Z',
			'0' <= r && r <= '9' && i > 0:
		default:
			return strconv.Quote(s)
		}
	}
	return s
}
