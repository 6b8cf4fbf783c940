package graph

import "fmt"

// Mapping strategy names understood by NewMapper.
const (
	MappingDense  = "dense"
	MappingDirect = "direct"
)

// NodeMapper converts raw addresses to graph node identifiers. Every address
// that appears anywhere in the input gets exactly one node.
type NodeMapper interface {
	// Node returns the node id for an address, allocating one on first sight.
	Node(addr int) int
	// NumNodes returns the size of the node universe seen so far.
	NumNodes() int
}

// NewMapper returns the mapper for a strategy name.
func NewMapper(name string) (NodeMapper, error) {
	switch name {
	case MappingDense:
		return NewDenseMapper(), nil
	case MappingDirect:
		return NewDirectMapper(), nil
	default:
		return nil, fmt.Errorf("unknown mapping strategy %q (want %q or %q)", name, MappingDense, MappingDirect)
	}
}

// DenseMapper assigns sequential node ids in first-seen order, independent
// of raw address magnitude. Node count equals the number of distinct
// addresses seen.
type DenseMapper struct {
	ids map[int]int
}

// NewDenseMapper returns an empty dense-compaction mapper.
func NewDenseMapper() *DenseMapper {
	return &DenseMapper{ids: make(map[int]int)}
}

func (m *DenseMapper) Node(addr int) int {
	if id, ok := m.ids[addr]; ok {
		return id
	}
	id := len(m.ids)
	m.ids[addr] = id
	return id
}

func (m *DenseMapper) NumNodes() int {
	return len(m.ids)
}

// DirectMapper uses the address value itself as the node id and sets the
// node count to the maximum address seen plus one. It assumes the upstream
// address space is already dense and bounded; unused integers in range
// become isolated singleton nodes, which is intentional.
type DirectMapper struct {
	max int
}

// NewDirectMapper returns a direct mapper with an empty node universe.
func NewDirectMapper() *DirectMapper {
	return &DirectMapper{max: -1}
}

func (m *DirectMapper) Node(addr int) int {
	if addr > m.max {
		m.max = addr
	}
	return addr
}

func (m *DirectMapper) NumNodes() int {
	return m.max + 1
}
