package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/bioforge/helix/internal/config"
	"github.com/bioforge/helix/internal/core"
	"github.com/bioforge/helix/internal/core/analysis"
	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/sources"
	"github.com/bioforge/helix/internal/driver"
	"github.com/bioforge/helix/internal/export"
	"github.com/bioforge/helix/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using process environment")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "path", path, "err", err)
		cfg = config.Default()
	}
	logger.Init(cfg.Logging.Debug)

	if err := run(cfg); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	saver := &export.Saver{
		Dir:  cfg.Run.OutputDir,
		Name: cfg.Run.GraphName,
		Formats: export.Formats{
			GML:      cfg.Export.GML,
			DOT:      cfg.Export.DOT,
			EdgeList: cfg.Export.EdgeList,
			TSV:      cfg.Export.TSV,
		},
	}
	pipeline := core.NewPipeline(saver, demoRules(), graph.Options{
		Kind:       cfg.Run.Kind,
		Datasource: cfg.Run.Datasource,
	})
	pipeline.BatchSize = cfg.Neo4j.BatchSize

	if cfg.Neo4j.URI != "" {
		d, err := driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
		if err != nil {
			return err
		}
		defer d.Close(ctx)
		pipeline.Driver = d
	}

	tables := demoSources()
	if len(cfg.Sources.Paths) > 0 {
		extra, err := sources.ReadTables(ctx, cfg.Sources.Paths, cfg.Sources.Concurrency)
		if err != nil {
			return err
		}
		tables = append(tables, extra...)
	}

	res, err := pipeline.Run(ctx, demoBackbone(), tables, metadata.Ledger{})
	if err != nil {
		return err
	}

	for source, stats := range res.Report.PerSource {
		logger.Info("source contribution",
			"source", source, "records", stats.Records, "empty", stats.Empty, "edges", stats.Edges)
	}
	for _, f := range res.Report.Failures {
		logger.Warn("cell skipped", "row", f.Row, "source", f.Source, "err", f.Err)
	}

	degrees := analysis.Degrees(res.Graph)
	logger.Info("degree distribution",
		"min", degrees.Min, "max", degrees.Max, "mean", degrees.Mean, "median", degrees.Median)

	communities := analysis.NewCommunityDetector().Detect(res.Graph)
	logger.Info("connectivity clusters", "count", len(communities))

	if res.Manifest != nil {
		logger.Info("artifacts written", "dir", res.Manifest.Dir, "files", len(res.Manifest.Files))
	}
	return nil
}
