package analysis

import (
	"sort"

	"github.com/bioforge/helix/internal/core/graph"
)

// CommunityDetector clusters nodes with label propagation over the
// undirected projection of the graph. Parallel edges weight the connection.
type CommunityDetector struct {
	MaxIterations int
}

func NewCommunityDetector() *CommunityDetector {
	return &CommunityDetector{MaxIterations: 20}
}

// Detect returns clusters of two or more nodes. Singleton nodes are not
// communities and are left out.
func (d *CommunityDetector) Detect(g *graph.Graph) [][]*graph.Node {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	// Undirected adjacency weighted by the number of parallel edges.
	adj := make(map[int64]map[int64]int, len(nodes))
	for _, n := range nodes {
		adj[n.ID()] = make(map[int64]int)
	}
	for _, e := range g.Edges() {
		u, v := e.From().ID(), e.To().ID()
		if u == v {
			continue
		}
		adj[u][v]++
		adj[v][u]++
	}

	// Every node starts in its own community.
	labels := make(map[int64]int64, len(nodes))
	for _, n := range nodes {
		labels[n.ID()] = n.ID()
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0
		for _, n := range nodes {
			neighbors := adj[n.ID()]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[int64]int, len(neighbors))
			maxCount := 0
			for v, weight := range neighbors {
				l := labels[v]
				counts[l] += weight
				if counts[l] > maxCount {
					maxCount = counts[l]
				}
			}

			// Deterministic tie-break: largest label wins.
			var candidates []int64
			for l, c := range counts {
				if c == maxCount {
					candidates = append(candidates, l)
				}
			}
			sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
			best := candidates[len(candidates)-1]

			if labels[n.ID()] != best {
				labels[n.ID()] = best
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	clusters := make(map[int64][]*graph.Node)
	for _, n := range nodes {
		l := labels[n.ID()]
		clusters[l] = append(clusters[l], n)
	}

	roots := make([]int64, 0, len(clusters))
	for l, cluster := range clusters {
		if len(cluster) >= 2 {
			roots = append(roots, l)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	communities := make([][]*graph.Node, 0, len(roots))
	for _, l := range roots {
		communities = append(communities, clusters[l])
	}
	return communities
}
