// Package cluster computes the weak connected components of an auxiliary
// graph. Each component is one address cluster under the multi-input
// heuristic.
package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"addrcluster/pkg/graph"
)

// Labeling maps every node id in [0, len(Labeling)) to its component id.
// Component ids are opaque: two nodes share an id iff they are reachable
// from one another, and no ordering or numeric meaning is implied.
type Labeling []int

// NumComponents returns the number of distinct components in the labeling.
func (l Labeling) NumComponents() int {
	max := -1
	for _, comp := range l {
		if comp > max {
			max = comp
		}
	}
	return max + 1
}

// Label computes the connected components of g. All nodes receive a label;
// nodes with degree zero form singleton components. The underlying gonum
// graph is scoped to this call and released when it returns.
func Label(g *graph.Graph) (Labeling, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot label inconsistent graph: %w", err)
	}
	ug := simple.NewUndirectedGraph()
	for i := 0; i < g.NumNodes; i++ {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		ug.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	labels := make(Labeling, g.NumNodes)
	for comp, nodes := range topo.ConnectedComponents(ug) {
		for _, n := range nodes {
			labels[n.ID()] = comp
		}
	}
	return labels, nil
}
