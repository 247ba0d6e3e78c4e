package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type RunConfig struct {
	GraphName  string `toml:"graph_name"`
	OutputDir  string `toml:"output_dir"`
	Kind       string `toml:"kind"`
	Datasource string `toml:"datasource"`
}

type ExportConfig struct {
	GML      bool `toml:"gml"`
	DOT      bool `toml:"dot"`
	EdgeList bool `toml:"edgelist"`
	TSV      bool `toml:"tsv"`
}

type Neo4jConfig struct {
	URI       string `toml:"uri"`
	User      string `toml:"user"`
	Password  string `toml:"password"`
	BatchSize int    `toml:"batch_size"`
}

type SourcesConfig struct {
	Paths       []string `toml:"paths"`
	Concurrency int      `toml:"concurrency"`
}

type LoggingConfig struct {
	Debug bool `toml:"debug"`
}

type Config struct {
	Run     RunConfig     `toml:"run"`
	Export  ExportConfig  `toml:"export"`
	Neo4j   Neo4jConfig   `toml:"neo4j"`
	Sources SourcesConfig `toml:"sources"`
	Logging LoggingConfig `toml:"logging"`
}

func Default() *Config {
	return &Config{
		Run: RunConfig{
			GraphName: "combined",
			OutputDir: "out",
		},
		Export: ExportConfig{GML: true, DOT: true, EdgeList: true, TSV: true},
		Neo4j:  Neo4jConfig{BatchSize: 500},
		Sources: SourcesConfig{
			Concurrency: 4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override the database endpoint and debug
// flag, so deployments can keep credentials out of the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("NEO4J_URI"); v != "" {
		c.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		c.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		c.Neo4j.Password = v
	}
	if v := os.Getenv("HELIX_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = debug
		}
	}
}
