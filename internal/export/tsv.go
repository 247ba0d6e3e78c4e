package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bioforge/helix/internal/core/graph"
)

// WriteNodeTSV renders one row per node with the open attribute bag as a
// JSON column, the shape downstream spreadsheet and bulk-import tooling
// consumes.
func WriteNodeTSV(path string, g *graph.Graph) error {
	var buf bytes.Buffer
	buf.WriteString("value\tnamespace\tkind\tname\tdatasource\tattributes\n")
	for _, n := range g.Nodes() {
		attrs, err := attrJSON(n.Attrs)
		if err != nil {
			return fmt.Errorf("node %s: %w", n.Key, err)
		}
		fmt.Fprintf(&buf, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tsvField(n.Key.Value), tsvField(n.Key.Namespace), tsvField(n.Kind),
			tsvField(n.Name), tsvField(n.Datasource), attrs)
	}
	return writeFile(path, &buf)
}

// WriteEdgeTSV renders one row per edge, endpoints as vocabulary-qualified
// identifiers.
func WriteEdgeTSV(path string, g *graph.Graph) error {
	var buf bytes.Buffer
	buf.WriteString("source\ttarget\tlabel\tdatasource\tattributes\n")
	for _, e := range g.Edges() {
		from := e.From().(*graph.Node)
		to := e.To().(*graph.Node)
		attrs, err := attrJSON(e.Attrs)
		if err != nil {
			return fmt.Errorf("edge %s -> %s: %w", from.Key, to.Key, err)
		}
		fmt.Fprintf(&buf, "%s\t%s\t%s\t%s\t%s\n",
			tsvField(from.Key.String()), tsvField(to.Key.String()),
			tsvField(e.Label), tsvField(e.Datasource), attrs)
	}
	return writeFile(path, &buf)
}

// attrJSON marshals an attribute bag with deterministic key order. JSON
// escaping keeps tabs and newlines out of the column.
func attrJSON(attrs map[string]any) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("failed to encode attributes: %w", err)
	}
	return string(data), nil
}

var tsvSanitizer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func tsvField(s string) string {
	return tsvSanitizer.Replace(s)
}
