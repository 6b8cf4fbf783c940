package graph

import "fmt"

// Spanning strategy names understood by NewSpanning.
const (
	SpanningPath = "path"
	SpanningStar = "star"
)

// SpanningStrategy produces a minimal connected edge set over the unique
// input nodes of one transaction, given in address order. Every strategy
// yields len(nodes)-1 edges for two or more nodes and nothing otherwise;
// the resulting components are identical regardless of strategy, so the
// choice only affects edge identity and count before deduplication.
type SpanningStrategy func(nodes []int) []Edge

// NewSpanning returns the spanning strategy for a name.
func NewSpanning(name string) (SpanningStrategy, error) {
	switch name {
	case SpanningPath:
		return SpanPath, nil
	case SpanningStar:
		return SpanStar, nil
	default:
		return nil, fmt.Errorf("unknown spanning strategy %q (want %q or %q)", name, SpanningPath, SpanningStar)
	}
}

// SpanPath links the nodes sequentially into a path.
func SpanPath(nodes []int) []Edge {
	if len(nodes) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		if e, ok := MakeEdge(nodes[i-1], nodes[i]); ok {
			edges = append(edges, e)
		}
	}
	return edges
}

// SpanStar links the first node to every other node.
func SpanStar(nodes []int) []Edge {
	if len(nodes) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		if e, ok := MakeEdge(nodes[0], nodes[i]); ok {
			edges = append(edges, e)
		}
	}
	return edges
}
