// Package core wires the pipeline stages together: combine annotator
// outputs onto an identifier backbone, append provenance, compile the
// graph, write the dataset bundle, and optionally push the graph into a
// database.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bioforge/helix/internal/core/analysis"
	"github.com/bioforge/helix/internal/core/combine"
	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/model"
	"github.com/bioforge/helix/internal/driver"
	"github.com/bioforge/helix/internal/export"
	"github.com/bioforge/helix/internal/logger"
)

// Pipeline runs fused-dataset builds. Saver and Driver are optional; a nil
// Saver skips the bundle stage, a nil Driver skips the database load.
type Pipeline struct {
	Rules   graph.Rules
	Options graph.Options
	Saver   *export.Saver
	Driver  driver.GraphDriver

	// BatchSize caps database upload batches; zero means the default.
	BatchSize int
}

func NewPipeline(saver *export.Saver, rules graph.Rules, opts graph.Options) *Pipeline {
	return &Pipeline{
		Rules:   rules,
		Options: opts,
		Saver:   saver,
	}
}

// RunResult carries everything one run produced.
type RunResult struct {
	RunID    string
	Started  time.Time
	Duration time.Duration

	Table    *model.Table
	Ledger   metadata.Ledger
	Graph    *graph.Graph
	Report   *graph.Report
	Summary  analysis.Summary
	Manifest *export.Manifest
	Warnings []combine.Warning
}

// Run executes the stages in order. A failed stage aborts the run and its
// partial output is discarded; the error names the stage that failed.
func (p *Pipeline) Run(ctx context.Context, backbone []model.IdentifierRecord, srcs []model.SourceTable, ledger metadata.Ledger) (*RunResult, error) {
	res := &RunResult{
		RunID:   uuid.New().String(),
		Started: time.Now().UTC(),
	}
	logger.Info("starting pipeline run",
		"run_id", res.RunID, "backbone_rows", len(backbone), "sources", len(srcs))

	table, warnings, err := combine.Combine(backbone, srcs...)
	if err != nil {
		return nil, fmt.Errorf("failed to combine sources: %w", err)
	}
	res.Table = table
	res.Warnings = warnings

	entries := make([]metadata.Entry, 0, len(srcs))
	for _, s := range srcs {
		e := s.Metadata
		if e.SourceName == "" {
			e.SourceName = s.Name
		}
		entries = append(entries, e)
	}
	res.Ledger = metadata.Append(ledger, entries...)

	g, report, err := graph.Compile(table, res.Ledger, p.Rules, p.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to compile graph: %w", err)
	}
	res.Graph = g
	res.Report = report
	res.Summary = analysis.Summarize(g)

	if p.Saver != nil {
		man, err := p.Saver.Save(table, res.Ledger, g)
		if err != nil {
			return nil, fmt.Errorf("failed to save dataset: %w", err)
		}
		res.Manifest = man
	}

	if p.Driver != nil {
		if err := p.Driver.BuildIndices(ctx); err != nil {
			return nil, fmt.Errorf("failed to build indices: %w", err)
		}
		if err := driver.LoadGraph(ctx, p.Driver, g, p.BatchSize); err != nil {
			return nil, fmt.Errorf("failed to load graph: %w", err)
		}
	}

	res.Duration = time.Since(res.Started)
	logger.Info("pipeline run finished", "run_id", res.RunID,
		"nodes", res.Summary.Nodes, "edges", res.Summary.Edges, "duration", res.Duration)
	return res, nil
}
