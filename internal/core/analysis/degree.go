package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/bioforge/helix/internal/core/graph"
)

// DegreeReport describes the degree distribution of a graph. Parallel edges
// count individually, so a node asserted twice against the same neighbor has
// degree two from those assertions.
type DegreeReport struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`

	Histogram    map[int]int `json:"histogram"`     // total degree -> node count
	InHistogram  map[int]int `json:"in_histogram"`  // in-degree -> node count
	OutHistogram map[int]int `json:"out_histogram"` // out-degree -> node count
}

// Degrees computes the in-, out-, and total-degree distributions plus
// summary statistics over the total degree.
func Degrees(g *graph.Graph) DegreeReport {
	report := DegreeReport{
		Histogram:    make(map[int]int),
		InHistogram:  make(map[int]int),
		OutHistogram: make(map[int]int),
	}
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return report
	}

	in := make(map[int64]int, len(nodes))
	out := make(map[int64]int, len(nodes))
	for _, e := range g.Edges() {
		out[e.From().ID()]++
		in[e.To().ID()]++
	}

	degrees := make([]float64, 0, len(nodes))
	report.Min = in[nodes[0].ID()] + out[nodes[0].ID()]
	for _, n := range nodes {
		d := in[n.ID()] + out[n.ID()]
		report.Histogram[d]++
		report.InHistogram[in[n.ID()]]++
		report.OutHistogram[out[n.ID()]]++
		if d < report.Min {
			report.Min = d
		}
		if d > report.Max {
			report.Max = d
		}
		degrees = append(degrees, float64(d))
	}

	sort.Float64s(degrees)
	report.Mean = stat.Mean(degrees, nil)
	report.Median = stat.Quantile(0.5, stat.Empirical, degrees, nil)
	report.P90 = stat.Quantile(0.9, stat.Empirical, degrees, nil)
	return report
}
