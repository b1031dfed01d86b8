package aggregates

import (
	"errors"

	"pipeline-backend/domain/core/valueobjects"
)

// Errors returned when graph construction rules are violated.
var (
	ErrDuplicateNode   = errors.New("node ID already registered")
	ErrUnknownEndpoint = errors.New("edge endpoint references an unknown node")
)

// Graph is the aggregate built from one request's node and edge records.
// Node IDs are mapped to dense indices so traversal works over flat slices
// instead of chasing map entries. A Graph is owned by the single request that
// built it and is never mutated after construction, so concurrent requests
// need no locking.
type Graph struct {
	ids       []string       // dense index -> node ID, in registration order
	index     map[string]int // node ID -> dense index
	adjacency [][]int        // outgoing neighbors, in edge insertion order
	edgeCount int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
	}
}

// AddNode registers a node ID with an empty outgoing-neighbor list.
// Registration order is preserved and determines traversal root order.
func (g *Graph) AddNode(id valueobjects.NodeID) error {
	key := id.String()
	if _, exists := g.index[key]; exists {
		return ErrDuplicateNode
	}

	g.index[key] = len(g.ids)
	g.ids = append(g.ids, key)
	g.adjacency = append(g.adjacency, nil)
	return nil
}

// AddEdge appends target to source's outgoing-neighbor list. Both endpoints
// must already be registered.
func (g *Graph) AddEdge(source, target valueobjects.NodeID) error {
	from, ok := g.index[source.String()]
	if !ok {
		return ErrUnknownEndpoint
	}
	to, ok := g.index[target.String()]
	if !ok {
		return ErrUnknownEndpoint
	}

	g.adjacency[from] = append(g.adjacency[from], to)
	g.edgeCount++
	return nil
}

// HasNode reports whether a node ID is registered
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	_, ok := g.index[id.String()]
	return ok
}

// NodeCount returns the number of registered nodes
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of registered edges
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// IDAt returns the node ID at a dense index
func (g *Graph) IDAt(i int) string {
	return g.ids[i]
}

// Neighbors returns the outgoing-neighbor indices of the node at a dense
// index. Callers must not modify the returned slice.
func (g *Graph) Neighbors(i int) []int {
	return g.adjacency[i]
}
