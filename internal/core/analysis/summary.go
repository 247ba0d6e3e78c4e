// Package analysis computes read-only statistics over compiled graphs:
// element counts, degree distributions, and connectivity clusters. Nothing
// here modifies the graph.
package analysis

import "github.com/bioforge/helix/internal/core/graph"

// Summary counts graph elements overall and partitioned by contributing
// source, node category, and relation label.
type Summary struct {
	Nodes             int            `json:"total_nodes"`
	Edges             int            `json:"total_edges"`
	NodesByDatasource map[string]int `json:"nodes_by_datasource"`
	EdgesByDatasource map[string]int `json:"edges_by_datasource"`
	NodesByKind       map[string]int `json:"nodes_by_kind"`
	EdgesByLabel      map[string]int `json:"edges_by_label"`
}

// Summarize walks the graph once and tallies every partition.
func Summarize(g *graph.Graph) Summary {
	s := Summary{
		Nodes:             g.NodeCount(),
		Edges:             g.EdgeCount(),
		NodesByDatasource: make(map[string]int),
		EdgesByDatasource: make(map[string]int),
		NodesByKind:       make(map[string]int),
		EdgesByLabel:      make(map[string]int),
	}
	for _, n := range g.Nodes() {
		s.NodesByDatasource[n.Datasource]++
		s.NodesByKind[n.Kind]++
	}
	for _, e := range g.Edges() {
		s.EdgesByDatasource[e.Datasource]++
		s.EdgesByLabel[e.Label]++
	}
	return s
}
