package export

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/model"
)

func init() {
	// Attribute bags only nest when tables are built in code rather than
	// parsed; register the container types so gob can carry them anyway.
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// SaveTable writes the fused table to path in the native format.
func SaveTable(path string, t *model.Table) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &UnwritableError{Path: path, Err: err}
	}
	return nil
}

// LoadTable reads a table written by SaveTable.
func LoadTable(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table '%s': %w", path, err)
	}
	var t model.Table
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode table '%s': %w", path, err)
	}
	return &t, nil
}

// GraphDump is the serializable form of a compiled graph, insertion order
// preserved so a rebuilt graph exports identically.
type GraphDump struct {
	Nodes      []NodeDump
	Edges      []EdgeDump
	Provenance metadata.Ledger
}

type NodeDump struct {
	Key        graph.NodeKey
	Kind       string
	Name       string
	Datasource string
	Attrs      map[string]any
}

type EdgeDump struct {
	From       graph.NodeKey
	To         graph.NodeKey
	Label      string
	Datasource string
	Attrs      map[string]any
}

// Dump flattens a graph for serialization.
func Dump(g *graph.Graph) *GraphDump {
	d := &GraphDump{
		Nodes:      make([]NodeDump, 0, g.NodeCount()),
		Edges:      make([]EdgeDump, 0, g.EdgeCount()),
		Provenance: g.Provenance,
	}
	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, NodeDump{
			Key:        n.Key,
			Kind:       n.Kind,
			Name:       n.Name,
			Datasource: n.Datasource,
			Attrs:      n.Attrs,
		})
	}
	for _, e := range g.Edges() {
		d.Edges = append(d.Edges, EdgeDump{
			From:       e.From().(*graph.Node).Key,
			To:         e.To().(*graph.Node).Key,
			Label:      e.Label,
			Datasource: e.Datasource,
			Attrs:      e.Attrs,
		})
	}
	return d
}

// Build reconstructs the compiled graph from a dump.
func (d *GraphDump) Build() (*graph.Graph, error) {
	g := graph.New()
	g.Provenance = d.Provenance
	for _, n := range d.Nodes {
		if _, err := g.AddNode(n.Key, n.Kind, n.Datasource, n.Name, n.Attrs); err != nil {
			return nil, fmt.Errorf("failed to rebuild node %s: %w", n.Key, err)
		}
	}
	for _, e := range d.Edges {
		from, ok := g.Node(e.From)
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %s", e.From)
		}
		to, ok := g.Node(e.To)
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %s", e.To)
		}
		g.AddEdge(from, to, e.Label, e.Datasource, e.Attrs)
	}
	return g, nil
}

// SaveGraph writes the graph to path in the native format.
func SaveGraph(path string, g *graph.Graph) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(Dump(g)); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &UnwritableError{Path: path, Err: err}
	}
	return nil
}

// LoadGraphDump reads a graph written by SaveGraph.
func LoadGraphDump(path string) (*GraphDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph '%s': %w", path, err)
	}
	var d GraphDump
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode graph '%s': %w", path, err)
	}
	return &d, nil
}
