package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioforge/helix/internal/core/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	aspirin, err := g.AddNode(graph.NodeKey{Value: "CID2244", Namespace: "PubChem Compound"},
		"Metabolite", "backbone", "aspirin", nil)
	require.NoError(t, err)
	ibuprofen, err := g.AddNode(graph.NodeKey{Value: "CID3672", Namespace: "PubChem Compound"},
		"Metabolite", "backbone", "ibuprofen", nil)
	require.NoError(t, err)
	pain, err := g.AddNode(graph.NodeKey{Value: "EFO_0003843", Namespace: "EFO"},
		"Disease", "diseases", "pain", nil)
	require.NoError(t, err)

	g.AddEdge(aspirin, pain, "associated_with", "diseases", map[string]any{"score": 0.72})
	g.AddEdge(aspirin, pain, "associated_with", "diseases", nil)
	g.AddEdge(ibuprofen, pain, "associated_with", "diseases", nil)
	return g
}

func batchRows(t *testing.T, params map[string]any) []map[string]any {
	t.Helper()
	rows, ok := params["rows"].([]map[string]any)
	require.True(t, ok, "rows parameter missing or mistyped")
	return rows
}

func TestLoadGraphNodesBeforeEdges(t *testing.T) {
	mock := &MockDriver{}
	require.NoError(t, LoadGraph(context.Background(), mock, testGraph(t), 0))

	require.Len(t, mock.Queries, 2)
	assert.Equal(t, LoadNodesQuery, mock.Queries[0])
	assert.Equal(t, LoadEdgesQuery, mock.Queries[1])

	assert.Len(t, batchRows(t, mock.Params[0]), 3)
	assert.Len(t, batchRows(t, mock.Params[1]), 3)
}

func TestLoadGraphBatches(t *testing.T) {
	mock := &MockDriver{}
	require.NoError(t, LoadGraph(context.Background(), mock, testGraph(t), 2))

	// 3 nodes and 3 edges in batches of 2: two queries each.
	require.Len(t, mock.Queries, 4)
	assert.Equal(t, []string{LoadNodesQuery, LoadNodesQuery, LoadEdgesQuery, LoadEdgesQuery}, mock.Queries)
	assert.Len(t, batchRows(t, mock.Params[0]), 2)
	assert.Len(t, batchRows(t, mock.Params[1]), 1)
	assert.Len(t, batchRows(t, mock.Params[2]), 2)
	assert.Len(t, batchRows(t, mock.Params[3]), 1)
}

func TestLoadGraphRowShape(t *testing.T) {
	mock := &MockDriver{}
	require.NoError(t, LoadGraph(context.Background(), mock, testGraph(t), 0))

	node := batchRows(t, mock.Params[0])[0]
	assert.Equal(t, "CID2244", node["value"])
	assert.Equal(t, "PubChem Compound", node["namespace"])
	assert.Equal(t, "Metabolite", node["kind"])
	assert.Equal(t, "aspirin", node["name"])
	assert.Equal(t, "backbone", node["datasource"])
	// Never nil: a null parameter would null the property map server-side.
	assert.Equal(t, map[string]any{}, node["attributes"])

	edge := batchRows(t, mock.Params[1])[0]
	assert.Equal(t, "CID2244", edge["source_value"])
	assert.Equal(t, "PubChem Compound", edge["source_namespace"])
	assert.Equal(t, "EFO_0003843", edge["target_value"])
	assert.Equal(t, "EFO", edge["target_namespace"])
	assert.Equal(t, "associated_with", edge["label"])
	assert.Equal(t, map[string]any{"score": 0.72}, edge["attributes"])
}

func TestLoadGraphPreservesParallelEdges(t *testing.T) {
	mock := &MockDriver{}
	require.NoError(t, LoadGraph(context.Background(), mock, testGraph(t), 0))

	rows := batchRows(t, mock.Params[1])
	require.Len(t, rows, 3)
	assert.Equal(t, rows[0]["source_value"], rows[1]["source_value"])
	assert.Equal(t, rows[0]["target_value"], rows[1]["target_value"])
}

func TestLoadGraphQueryError(t *testing.T) {
	mock := &MockDriver{Err: errors.New("connection reset")}
	err := LoadGraph(context.Background(), mock, testGraph(t), 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load node batch at offset 0")
	assert.Len(t, mock.Queries, 1, "the first failure stops the upload")
}

func TestLoadGraphEmptyGraph(t *testing.T) {
	mock := &MockDriver{}
	require.NoError(t, LoadGraph(context.Background(), mock, graph.New(), 0))
	assert.Empty(t, mock.Queries)
}
