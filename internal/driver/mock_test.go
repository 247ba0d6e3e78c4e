package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver records every query it is handed, in call order.
type MockDriver struct {
	Queries    []string
	Params     []map[string]any
	MockResult neo4j.EagerResult
	Err        error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	return m.MockResult, m.Err
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return m.Err
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}
