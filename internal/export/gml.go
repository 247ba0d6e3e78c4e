package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bioforge/helix/internal/core/graph"
)

// WriteGML renders the graph in Graph Modelling Language, compatible with
// the readers most graph toolkits ship. Node ids are the insertion indices;
// parallel edges get ascending key values per endpoint pair.
func WriteGML(path string, g *graph.Graph) error {
	var buf bytes.Buffer
	buf.WriteString("graph [\n")
	buf.WriteString("  directed 1\n")
	buf.WriteString("  multigraph 1\n")

	for _, n := range g.Nodes() {
		buf.WriteString("  node [\n")
		fmt.Fprintf(&buf, "    id %d\n", n.ID())
		fmt.Fprintf(&buf, "    label \"%s\"\n", gmlEscape(n.Key.String()))
		if err := gmlField(&buf, "kind", n.Kind); err != nil {
			return err
		}
		if err := gmlField(&buf, "name", n.Name); err != nil {
			return err
		}
		if err := gmlField(&buf, "datasource", n.Datasource); err != nil {
			return err
		}
		if err := gmlAttrs(&buf, n.Attrs); err != nil {
			return err
		}
		buf.WriteString("  ]\n")
	}

	keys := make(map[[2]int64]int)
	for _, e := range g.Edges() {
		pair := [2]int64{e.From().ID(), e.To().ID()}
		buf.WriteString("  edge [\n")
		fmt.Fprintf(&buf, "    source %d\n", pair[0])
		fmt.Fprintf(&buf, "    target %d\n", pair[1])
		fmt.Fprintf(&buf, "    key %d\n", keys[pair])
		keys[pair]++
		if err := gmlField(&buf, "label", e.Label); err != nil {
			return err
		}
		if err := gmlField(&buf, "datasource", e.Datasource); err != nil {
			return err
		}
		if err := gmlAttrs(&buf, e.Attrs); err != nil {
			return err
		}
		buf.WriteString("  ]\n")
	}

	buf.WriteString("]\n")
	return writeFile(path, &buf)
}

func gmlAttrs(buf *bytes.Buffer, attrs map[string]any) error {
	for _, k := range sortedKeys(attrs) {
		if err := gmlField(buf, k, attrs[k]); err != nil {
			return err
		}
	}
	return nil
}

// gmlField writes one key plus a scalar value. Empty strings and nils are
// omitted rather than rendered.
func gmlField(buf *bytes.Buffer, key string, value any) error {
	if !validGMLKey(key) {
		return fmt.Errorf("attribute %q is not a valid GML key", key)
	}
	switch v := value.(type) {
	case nil:
	case string:
		if v != "" {
			fmt.Fprintf(buf, "    %s \"%s\"\n", key, gmlEscape(v))
		}
	case bool:
		n := 0
		if v {
			n = 1
		}
		fmt.Fprintf(buf, "    %s %d\n", key, n)
	case int:
		fmt.Fprintf(buf, "    %s %d\n", key, v)
	case int32:
		fmt.Fprintf(buf, "    %s %d\n", key, v)
	case int64:
		fmt.Fprintf(buf, "    %s %d\n", key, v)
	case float32:
		fmt.Fprintf(buf, "    %s %s\n", key, strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		fmt.Fprintf(buf, "    %s %s\n", key, strconv.FormatFloat(v, 'g', -1, 64))
	default:
		return fmt.Errorf("attribute %q holds %T, which GML cannot carry", key, value)
	}
	return nil
}

// GML keys are a letter followed by word characters.
func validGMLKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case (r == '_' || '0' <= r && r <= '9') && i > 0:
		default:
			return false
		}
	}
	return true
}

// gmlEscape encodes quotes, ampersands, and non-ASCII runes as numeric
// character references, matching common GML reader expectations.
func gmlEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&#38;")
		case r == '"':
			b.WriteString("&#34;")
		case r < 128:
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "&#%d;", r)
		}
	}
	return b.String()
}
