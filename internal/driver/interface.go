// Package driver pushes compiled graphs into a Cypher-speaking property
// graph database. Loading is an optional final pipeline stage; nothing else
// depends on a database being reachable.
package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
