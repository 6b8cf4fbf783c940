// Package graphio reads and writes the on-disk representations of the
// auxiliary graph: a compact binary edge-list format and the clustering CSV.
//
// The binary format is a sequence of big-endian 32-bit signed integers:
//
//	[num_nodes][num_edges] followed by num_edges pairs [u][v]
//
// The byte order is fixed system-wide; there is no auto-detection.
package graphio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"addrcluster/pkg/graph"
)

const headerSize = 8

// WriteGraph serializes g to path. The file is written to a temporary
// sibling and renamed into place, so a failed run never leaves a readable
// but incomplete graph file.
func WriteGraph(path string, g *graph.Graph) error {
	if g.NumNodes > math.MaxInt32 {
		return fmt.Errorf("node count %d exceeds int32 range", g.NumNodes)
	}
	if len(g.Edges) > math.MaxInt32 {
		return fmt.Errorf("edge count %d exceeds int32 range", len(g.Edges))
	}
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("error creating graph file %s: %w", tmp, err)
	}
	if err := writeGraphTo(file, g); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("error writing graph file %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error closing graph file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error renaming graph file into place: %w", err)
	}
	return nil
}

func writeGraphTo(file *os.File, g *graph.Graph) error {
	w := bufio.NewWriter(file)
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(int32(g.NumNodes)))
	binary.BigEndian.PutUint32(buf[4:8], uint32(int32(len(g.Edges))))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	for _, e := range g.Edges {
		binary.BigEndian.PutUint32(buf[0:4], uint32(int32(e.U)))
		binary.BigEndian.PutUint32(buf[4:8], uint32(int32(e.V)))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadGraph deserializes the graph stored at path. A non-zero nodeCount
// overrides the node count in the header, for cases where the true address
// universe is known to exceed what appears in one graph shard; it must not
// be smaller than the header value. A file whose length disagrees with the
// edge count in its header is rejected.
func ReadGraph(path string, nodeCount int) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading graph file %s: %w", path, err)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("graph file %s too short for header: %d bytes", path, len(data))
	}
	numNodes := int(int32(binary.BigEndian.Uint32(data[0:4])))
	numEdges := int(int32(binary.BigEndian.Uint32(data[4:8])))
	if numNodes < 0 || numEdges < 0 {
		return nil, fmt.Errorf("graph file %s has negative counts: nodes=%d, edges=%d", path, numNodes, numEdges)
	}
	if want := headerSize + 8*numEdges; len(data) != want {
		return nil, fmt.Errorf("graph file %s edge count mismatch: header says %d edges (%d bytes), file has %d bytes",
			path, numEdges, want, len(data))
	}
	if nodeCount != 0 {
		if nodeCount < numNodes {
			return nil, fmt.Errorf("node count override %d is smaller than %d in header", nodeCount, numNodes)
		}
		numNodes = nodeCount
	}
	g := &graph.Graph{
		NumNodes: numNodes,
		Edges:    make([]graph.Edge, numEdges),
	}
	for i := 0; i < numEdges; i++ {
		off := headerSize + 8*i
		g.Edges[i] = graph.Edge{
			U: int(int32(binary.BigEndian.Uint32(data[off : off+4]))),
			V: int(int32(binary.BigEndian.Uint32(data[off+4 : off+8]))),
		}
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph file %s is inconsistent: %w", path, err)
	}
	return g, nil
}
