// Package graph builds the auxiliary co-spend graph: an undirected simple
// graph over address nodes in which the unique input addresses of every
// transaction form a connected set (the multi-input heuristic).
package graph

import (
	"fmt"
)

// Edge is an undirected edge stored canonically with U < V.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// MakeEdge returns the canonical edge for the node pair (a, b). The second
// return value is false for a self-pair, which produces no edge.
func MakeEdge(a, b int) (Edge, bool) {
	if a == b {
		return Edge{}, false
	}
	if a > b {
		a, b = b, a
	}
	return Edge{U: a, V: b}, true
}

// Graph is the auxiliary graph: a node universe [0, NumNodes) and a list of
// canonical edges. A finalized graph has its edges sorted and deduplicated.
type Graph struct {
	NumNodes int    `json:"num_nodes"`
	Edges    []Edge `json:"-"`
}

// Validate checks structural consistency: a non-negative node count and, for
// every edge, canonical order with both endpoints in range. This implies no
// self-loops.
func (g *Graph) Validate() error {
	if g.NumNodes < 0 {
		return fmt.Errorf("graph must have a non-negative number of nodes, got %d", g.NumNodes)
	}
	for i, e := range g.Edges {
		if e.U < 0 || e.U >= e.V || e.V >= g.NumNodes {
			return fmt.Errorf("edge %d out of range or not canonical: u=%d, v=%d, numNodes=%d", i, e.U, e.V, g.NumNodes)
		}
	}
	return nil
}
