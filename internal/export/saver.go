// Package export writes a compiled dataset to disk in every supported
// format and reads the native artifacts back. One Save call produces one
// bundle directory; every format in the bundle is derived from the same
// in-memory graph, so they agree with each other by construction.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/model"
	"github.com/bioforge/helix/internal/logger"
)

// UnwritableError wraps a failure to create or write an output file.
type UnwritableError struct {
	Path string
	Err  error
}

func (e *UnwritableError) Error() string {
	return fmt.Sprintf("failed to write '%s': %v", e.Path, e.Err)
}

func (e *UnwritableError) Unwrap() error { return e.Err }

// Formats toggles the interchange formats. The native table, ledger, and
// graph artifacts are always written.
type Formats struct {
	GML      bool `toml:"gml"`
	DOT      bool `toml:"dot"`
	EdgeList bool `toml:"edgelist"`
	TSV      bool `toml:"tsv"`
}

// AllFormats enables every interchange format.
var AllFormats = Formats{GML: true, DOT: true, EdgeList: true, TSV: true}

// Saver writes one dataset bundle under Dir/Name/ with file names prefixed
// by Name.
type Saver struct {
	Dir     string
	Name    string
	Formats Formats
}

// Manifest lists what one Save call produced.
type Manifest struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
	Nodes int      `json:"nodes"`
	Edges int      `json:"edges"`
}

// Save writes the bundle. Artifacts are written in a fixed order; the first
// failure stops the run and leaves the files already written in place.
func (s *Saver) Save(table *model.Table, ledger metadata.Ledger, g *graph.Graph) (*Manifest, error) {
	dir := filepath.Join(s.Dir, s.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &UnwritableError{Path: dir, Err: err}
	}
	man := &Manifest{Dir: dir, Nodes: g.NodeCount(), Edges: g.EdgeCount()}

	steps := []struct {
		file    string
		enabled bool
		write   func(path string) error
	}{
		{s.Name + "_df.gob", true, func(p string) error { return SaveTable(p, table) }},
		{s.Name + "_metadata.json", true, func(p string) error { return SaveLedger(p, ledger) }},
		{s.Name + "_graph.gob", true, func(p string) error { return SaveGraph(p, g) }},
		{s.Name + "_graph.gml", s.Formats.GML, func(p string) error { return WriteGML(p, g) }},
		{s.Name + "_graph.dot", s.Formats.DOT, func(p string) error { return WriteDOT(p, g) }},
		{s.Name + "_graph.edgelist", s.Formats.EdgeList, func(p string) error { return WriteEdgeList(p, g) }},
		{s.Name + "_nodes.tsv", s.Formats.TSV, func(p string) error { return WriteNodeTSV(p, g) }},
		{s.Name + "_edges.tsv", s.Formats.TSV, func(p string) error { return WriteEdgeTSV(p, g) }},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := step.write(filepath.Join(dir, step.file)); err != nil {
			return nil, err
		}
		man.Files = append(man.Files, step.file)
	}

	logger.Info("saved dataset bundle", "dir", dir, "files", len(man.Files),
		"nodes", man.Nodes, "edges", man.Edges)
	return man, nil
}

// SaveLedger writes the metadata ledger as indented JSON.
func SaveLedger(path string, l metadata.Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &UnwritableError{Path: path, Err: err}
	}
	return nil
}

// LoadLedger reads a ledger written by SaveLedger.
func LoadLedger(path string) (metadata.Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger '%s': %w", path, err)
	}
	var l metadata.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to decode ledger '%s': %w", path, err)
	}
	return l, nil
}

func writeFile(path string, buf *bytes.Buffer) error {
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &UnwritableError{Path: path, Err: err}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
