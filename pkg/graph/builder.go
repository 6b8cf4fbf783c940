package graph

import (
	"sort"

	"addrcluster/pkg/tx"
)

// Builder accumulates edges over a whole transaction stream and defers
// deduplication to one batch sort-and-compact pass in Finalize. The batch
// pass bounds per-edge cost at scale, where per-insertion membership checks
// become the dominant cost.
type Builder struct {
	mapper NodeMapper
	span   SpanningStrategy
	edges  []Edge
}

// NewBuilder returns a Builder using the given mapping and spanning
// strategies.
func NewBuilder(mapper NodeMapper, span SpanningStrategy) *Builder {
	return &Builder{mapper: mapper, span: span}
}

// Add processes one transaction: input addresses are mapped to nodes in
// address order and spanned into edges, output addresses only materialize
// nodes. Transactions with fewer than two unique inputs contribute no edges.
func (b *Builder) Add(t tx.Transaction) {
	if len(t.Inputs) > 0 {
		nodes := make([]int, len(t.Inputs))
		for i, addr := range t.Inputs {
			nodes[i] = b.mapper.Node(addr)
		}
		b.edges = append(b.edges, b.span(nodes)...)
	}
	for _, addr := range t.Outputs {
		b.mapper.Node(addr)
	}
}

// Finalize sorts the accumulated edges by canonical (U, V) key, compacts
// adjacent duplicates in one linear pass, and returns the resulting graph.
// The builder must not be reused afterwards.
func (b *Builder) Finalize() *Graph {
	edges := b.edges
	b.edges = nil
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return &Graph{NumNodes: b.mapper.NumNodes(), Edges: out}
}
