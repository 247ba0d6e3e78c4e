package export

import (
	"bytes"
	"fmt"

	"github.com/bioforge/helix/internal/core/graph"
)

// WriteEdgeList renders one tab-separated "source target" pair per edge,
// using vocabulary-qualified node identifiers. Parallel edges repeat.
func WriteEdgeList(path string, g *graph.Graph) error {
	var buf bytes.Buffer
	for _, e := range g.Edges() {
		from := e.From().(*graph.Node)
		to := e.To().(*graph.Node)
		fmt.Fprintf(&buf, "%s\t%s\n", from.Key, to.Key)
	}
	return writeFile(path, &buf)
}
