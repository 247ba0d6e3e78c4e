package export

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/graph/encoding/dot"

	"github.com/bioforge/helix/internal/core/graph"
)

// WriteDOT renders the graph in Graphviz DOT form via gonum's multigraph
// encoder. Node and edge attribute emission lives on the graph types.
func WriteDOT(path string, g *graph.Graph) error {
	data, err := dot.MarshalMulti(g.Multi(), "", "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode DOT: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &UnwritableError{Path: path, Err: err}
	}
	return nil
}
