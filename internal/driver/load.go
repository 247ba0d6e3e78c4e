package driver

import (
	"context"
	"fmt"

	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/logger"
)

const DefaultBatchSize = 500

// LoadGraph uploads a compiled graph in UNWIND batches. Nodes go first
// because the edge query matches its endpoints.
func LoadGraph(ctx context.Context, d GraphDriver, g *graph.Graph, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	nodes := g.Nodes()
	for start := 0; start < len(nodes); start += batchSize {
		end := min(start+batchSize, len(nodes))
		rows := make([]map[string]any, 0, end-start)
		for _, n := range nodes[start:end] {
			rows = append(rows, map[string]any{
				"value":      n.Key.Value,
				"namespace":  n.Key.Namespace,
				"kind":       n.Kind,
				"name":       n.Name,
				"datasource": n.Datasource,
				"attributes": attrsParam(n.Attrs),
			})
		}
		if _, err := d.ExecuteQuery(ctx, LoadNodesQuery, map[string]any{"rows": rows}); err != nil {
			return fmt.Errorf("failed to load node batch at offset %d: %w", start, err)
		}
	}

	edges := g.Edges()
	for start := 0; start < len(edges); start += batchSize {
		end := min(start+batchSize, len(edges))
		rows := make([]map[string]any, 0, end-start)
		for _, e := range edges[start:end] {
			from := e.From().(*graph.Node)
			to := e.To().(*graph.Node)
			rows = append(rows, map[string]any{
				"source_value":     from.Key.Value,
				"source_namespace": from.Key.Namespace,
				"target_value":     to.Key.Value,
				"target_namespace": to.Key.Namespace,
				"label":            e.Label,
				"datasource":       e.Datasource,
				"attributes":       attrsParam(e.Attrs),
			})
		}
		if _, err := d.ExecuteQuery(ctx, LoadEdgesQuery, map[string]any{"rows": rows}); err != nil {
			return fmt.Errorf("failed to load edge batch at offset %d: %w", start, err)
		}
	}

	logger.Info("loaded graph into database", "nodes", len(nodes), "edges", len(edges))
	return nil
}

// attrsParam never returns nil; a nil query parameter would null out the
// property map on the other side.
func attrsParam(attrs map[string]any) map[string]any {
	if attrs == nil {
		return map[string]any{}
	}
	return attrs
}
