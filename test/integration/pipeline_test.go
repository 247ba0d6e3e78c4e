//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioforge/helix/internal/core"
	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/model"
	"github.com/bioforge/helix/internal/driver"
	"github.com/bioforge/helix/internal/export"
)

func TestFullPipeline(t *testing.T) {
	// Load environment if present
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("Skipping integration test: NEO4J_URI not set")
	}
	user := os.Getenv("NEO4J_USER")
	pwd := os.Getenv("NEO4J_PASSWORD")

	d, err := driver.NewNeo4jDriver(uri, user, pwd)
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()

	// Unique value prefix for this run so concurrent test data stays apart.
	tag := fmt.Sprintf("it-%s-", uuid.New().String())
	defer func() {
		_, _ = d.ExecuteQuery(ctx,
			`MATCH (n:Entity) WHERE n.value STARTS WITH $tag DETACH DELETE n`,
			map[string]any{"tag": tag})
		t.Logf("Cleaned up test prefix: %s", tag)
	}()

	backbone := []model.IdentifierRecord{
		{Identifier: tag + "CHEBI:15365", IdentifierSource: "ChEBI", Target: tag + "CID2244", TargetSource: "PubChem Compound"},
		{Identifier: tag + "CHEBI:5855", IdentifierSource: "ChEBI", Target: tag + "CID3672", TargetSource: "PubChem Compound"},
	}
	srcs := []model.SourceTable{
		{
			Name: "diseases",
			Rows: []model.SourceRow{{
				IdentifierRecord: backbone[0],
				Annotations: []model.Annotation{
					{ID: tag + "EFO_0003843", Namespace: "EFO", Name: "pain", Attributes: map[string]any{"score": 0.72}},
				},
			}},
			Metadata: metadata.Entry{SourceName: "diseases", SourceVersion: "24.06"},
		},
		{
			Name: "proteins",
			Rows: []model.SourceRow{{
				IdentifierRecord: backbone[1],
				Annotations: []model.Annotation{
					{ID: tag + "P35354", Namespace: "Uniprot-TrEMBL", Name: "PTGS2", Relation: "inhibits"},
				},
			}},
		},
	}
	rules := graph.Rules{
		"diseases": {EdgeLabel: "associated_with", Kind: "Disease", Namespace: "EFO"},
		"proteins": {EdgeLabel: "interacts_with", Kind: "Protein", Namespace: "Uniprot-TrEMBL", Direction: graph.ToAnchor},
	}

	saver := &export.Saver{Dir: t.TempDir(), Name: "combined", Formats: export.AllFormats}
	p := core.NewPipeline(saver, rules, graph.Options{Kind: "Metabolite", Datasource: "bridgedb"})
	p.Driver = d

	res, err := p.Run(ctx, backbone, srcs, nil)
	require.NoError(t, err)
	t.Logf("Run %s: %d nodes, %d edges in %v", res.RunID, res.Summary.Nodes, res.Summary.Edges, res.Duration)

	// Bundle written
	require.NotNil(t, res.Manifest)
	for _, f := range res.Manifest.Files {
		_, err := os.Stat(filepath.Join(res.Manifest.Dir, f))
		assert.NoError(t, err, f)
	}

	// Graph landed in the database
	nodeRes, err := d.ExecuteQuery(ctx,
		`MATCH (n:Entity) WHERE n.value STARTS WITH $tag RETURN count(n) as count`,
		map[string]any{"tag": tag})
	require.NoError(t, err)
	require.NotEmpty(t, nodeRes.Records)
	count, _ := nodeRes.Records[0].Get("count")
	assert.Equal(t, int64(6), count.(int64))

	edgeRes, err := d.ExecuteQuery(ctx,
		`MATCH (a:Entity)-[r:RELATES_TO]->(b:Entity) WHERE a.value STARTS WITH $tag RETURN count(r) as count`,
		map[string]any{"tag": tag})
	require.NoError(t, err)
	require.NotEmpty(t, edgeRes.Records)
	count, _ = edgeRes.Records[0].Get("count")
	assert.Equal(t, int64(2), count.(int64))

	// Node properties survived the trip
	kindRes, err := d.ExecuteQuery(ctx,
		`MATCH (n:Entity {value: $v}) RETURN n.kind as kind, n.name as name`,
		map[string]any{"v": tag + "EFO_0003843"})
	require.NoError(t, err)
	require.NotEmpty(t, kindRes.Records)
	kind, _ := kindRes.Records[0].Get("kind")
	assert.Equal(t, "Disease", kind.(string))
	name, _ := kindRes.Records[0].Get("name")
	assert.Equal(t, "pain", name.(string))
}
